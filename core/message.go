package core

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a transcript message.
type Role string

const (
	// RoleUser marks a message authored by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks a message authored by the remote assistant.
	RoleAssistant Role = "assistant"
)

// EventKind tags the normalized assistant reply kind carried by a message.
type EventKind string

const (
	// EventMessage is a plain conversational reply.
	EventMessage EventKind = "message"
	// EventSuggest is a product recommendation reply.
	EventSuggest EventKind = "suggest"
	// EventDo is a side-effecting instruction reply.
	EventDo EventKind = "do"
)

// Message is a single transcript entry. After construction it should be
// treated as immutable; the transcript is append-only and entries are only
// discarded wholesale when a conversation is replaced or restarted.
//
// Kind is empty for user messages and for assistant messages that carry no
// event metadata (e.g. the greeting seeded by StartNew).
type Message struct {
	ID          string       `json:"id"`
	Role        Role         `json:"role"`
	Content     string       `json:"content"`
	Kind        EventKind    `json:"kind,omitempty"`
	ProductRefs []ProductRef `json:"product_refs,omitempty"`
	Action      string       `json:"action,omitempty"`
	TargetPage  string       `json:"target_page,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}

// NewUserMessage creates a user-authored message with the given text.
func NewUserMessage(text string) Message {
	return Message{ID: NewID(), Role: RoleUser, Content: text, Timestamp: time.Now().UTC()}
}

// NewAssistantMessage creates an assistant-authored message with the given
// text and no event metadata.
func NewAssistantMessage(text string) Message {
	return Message{ID: NewID(), Role: RoleAssistant, Content: text, Timestamp: time.Now().UTC()}
}

// ProductRef is a partial product reference as emitted by the assistant.
// ID is authoritative; Quantity 0 means "absent" and is defaulted to 1 at the
// cart mutation boundary; Title is optional display data filled by enrichment.
type ProductRef struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity,omitempty"`
	Title    string `json:"title,omitempty"`
}

// CatalogProduct is the canonical product record owned by the external
// catalog collaborator. This core only reads it, never mutates it.
type CatalogProduct struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
	Category string  `json:"category,omitempty"`
}

// NewID generates a new unique identifier for locally created messages.
func NewID() string { return uuid.NewString() }
