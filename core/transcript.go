package core

import "sync"

// Transcript is the ordered, append-only list of messages shown for a
// conversation. It is owned exclusively by the dispatcher; other components
// only ever observe defensive copies. Safe for concurrent access.
type Transcript struct {
	mu       sync.RWMutex
	messages []Message
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{messages: []Message{}}
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(msg Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msg)
}

// Replace swaps the full message list, preserving the order given.
func (t *Transcript) Replace(msgs []Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = make([]Message, len(msgs))
	copy(t.messages, msgs)
}

// Messages returns a defensive copy of the message slice to prevent callers
// from mutating internal state.
func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	msgs := make([]Message, len(t.messages))
	copy(msgs, t.messages)
	return msgs
}

// Len returns the number of messages in the transcript.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// Last returns the most recent message and true, or a zero message and false
// when the transcript is empty.
func (t *Transcript) Last() (Message, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}
