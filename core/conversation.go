package core

// Status is the server-reported lifecycle state of a conversation. The core
// never sets it optimistically; every value originates from a server envelope
// or a loaded conversation snapshot.
type Status string

const (
	// StatusActive is normal operation.
	StatusActive Status = "active"
	// StatusNeedsHuman indicates the server flagged the conversation for a
	// human agent. Sending is still permitted; this is not terminal.
	StatusNeedsHuman Status = "needs_human"
	// StatusArchived is terminal for display purposes.
	StatusArchived Status = "archived"
)

// ParseStatus maps a server-reported status string to a Status. Unknown or
// empty values resolve to StatusActive so a misbehaving server can never wedge
// a conversation into an unrepresentable state.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusNeedsHuman:
		return StatusNeedsHuman
	case StatusArchived:
		return StatusArchived
	default:
		return StatusActive
	}
}

// PersistedTurn is one stored turn of a persisted conversation. For assistant
// turns Content is a JSON string that itself encodes an AssistantEvent-shaped
// payload; for user turns it is plain text. Decoding a turn must never fail
// observably: on decode failure the turn degrades to a plain message.
type PersistedTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is a snapshot of a server-owned conversation. ID is assigned
// by the remote API on the first successful send; an in-progress new
// conversation has an empty ID.
type Conversation struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Status Status          `json:"status"`
	Turns  []PersistedTurn `json:"turns,omitempty"`
}

// IsNew reports whether the conversation has not yet been assigned a server id.
func (c Conversation) IsNew() bool { return c.ID == "" }
