// Package input reads terminal key presses and maps them to actions.
package input

import (
	"io"
)

// Input represents the current frame's input state.
type Input struct {
	Events  []Event
	Closed  bool   // The underlying reader ended; no more input will arrive
	Pressed []byte // Raw bytes drained this frame
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan byte
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r io.ByteReader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// decodes them into key events.
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return Input{
		Events:  Decode(buf),
		Closed:  s.closed,
		Pressed: buf,
	}
}
