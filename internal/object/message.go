package object

import (
	"github.com/tomz197/lines/internal/draw"
	"github.com/tomz197/lines/internal/settings"
)

// messageLinger is how far below zero a message's countdown runs before the
// message is dropped. Expired messages keep their slot in the layout until then.
const messageLinger = -10

// Message is a transient status line.
type Message struct {
	Text      string
	Remaining int        // Ticks left; drawn while > 0
	Position  draw.Point // Canvas sub-pixel coordinates of the text origin
}

// Visible reports whether the message is drawn.
func (m Message) Visible() bool {
	return m.Remaining > 0
}

// MessageQueue holds status messages in creation order.
type MessageQueue struct {
	messages []Message
}

// Flash appends a message below the previous one, or back at the top when
// the next line would not fit the viewport. duration <= 0 uses the default.
func (q *MessageQueue) Flash(text string, duration int, screen Screen, s settings.Settings) {
	if duration <= 0 {
		duration = s.MessageDuration
	}

	y := s.MessagePos.Y
	if n := len(q.messages); n > 0 {
		if next := q.messages[n-1].Position.Y + s.MessageHeight; next < screen.Height {
			y = next
		}
	}

	q.messages = append(q.messages, Message{
		Text:      text,
		Remaining: duration,
		Position:  draw.Point{X: s.MessagePos.X, Y: y},
	})
}

// Age runs one tick: it collects the messages visible this tick into dst,
// counts every message down and drops those that lingered long enough.
func (q *MessageQueue) Age(dst []Message) []Message {
	dst = dst[:0]
	kept := q.messages[:0]
	for _, m := range q.messages {
		if m.Visible() {
			dst = append(dst, m)
		}
		m.Remaining--
		if m.Remaining > messageLinger {
			kept = append(kept, m)
		}
	}
	clear(q.messages[len(kept):])
	q.messages = kept
	return dst
}

// Visible collects the currently visible messages into dst without aging them.
func (q *MessageQueue) Visible(dst []Message) []Message {
	dst = dst[:0]
	for _, m := range q.messages {
		if m.Visible() {
			dst = append(dst, m)
		}
	}
	return dst
}

// Len returns the number of queued messages, lingering ones included.
func (q *MessageQueue) Len() int {
	return len(q.messages)
}

// Messages returns the queued messages. The slice is owned by the queue.
func (q *MessageQueue) Messages() []Message {
	return q.messages
}

// Clear drops every message.
func (q *MessageQueue) Clear() {
	clear(q.messages)
	q.messages = q.messages[:0]
}
