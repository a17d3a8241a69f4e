package input

// Key identifies a decoded key press.
type Key int

const (
	KeyRune Key = iota // Printable character, see Event.Rune
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyPageUp
	KeyPageDown
	KeyEnter
	KeyEscape
	KeyCtrlC
	KeyUnknown // Unrecognized control byte or escape sequence
)

// Event is a single key press.
type Event struct {
	Key  Key
	Rune rune
}

const (
	esc   = '\x1b'
	ctrlC = '\x03'
)

// Decode splits raw terminal input into key events. It understands CSI and
// SS3 arrow keys and the CSI PageUp/PageDown sequences. A lone ESC at the end
// of the buffer is reported as KeyEscape.
func Decode(buf []byte) []Event {
	var events []Event
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == esc && i+1 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
			ev, n := decodeEscape(buf[i:])
			events = append(events, ev)
			i += n - 1
			continue
		}

		switch {
		case b == esc:
			events = append(events, Event{Key: KeyEscape})
		case b == ctrlC:
			events = append(events, Event{Key: KeyCtrlC})
		case b == '\r' || b == '\n':
			events = append(events, Event{Key: KeyEnter})
		case b >= 0x20 && b < 0x7f:
			events = append(events, Event{Key: KeyRune, Rune: rune(b)})
		default:
			events = append(events, Event{Key: KeyUnknown, Rune: rune(b)})
		}
	}
	return events
}

// decodeEscape decodes a sequence starting with ESC [ or ESC O and returns
// the event and the number of bytes consumed.
func decodeEscape(seq []byte) (Event, int) {
	if len(seq) < 3 {
		return Event{Key: KeyUnknown}, len(seq)
	}
	switch seq[2] {
	case 'A':
		return Event{Key: KeyUp}, 3
	case 'B':
		return Event{Key: KeyDown}, 3
	case 'C':
		return Event{Key: KeyRight}, 3
	case 'D':
		return Event{Key: KeyLeft}, 3
	}

	if seq[1] == '[' {
		// ESC [ <params> <final>, final byte in 0x40..0x7e
		for j := 2; j < len(seq); j++ {
			if seq[j] >= 0x40 && seq[j] <= 0x7e {
				switch string(seq[2 : j+1]) {
				case "5~":
					return Event{Key: KeyPageUp}, j + 1
				case "6~":
					return Event{Key: KeyPageDown}, j + 1
				}
				return Event{Key: KeyUnknown}, j + 1
			}
		}
		return Event{Key: KeyUnknown}, len(seq)
	}
	return Event{Key: KeyUnknown}, 3
}
