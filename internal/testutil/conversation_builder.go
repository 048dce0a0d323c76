package testutil

import (
	"encoding/json"
	"fmt"

	"github.com/TristanRenard/anagochat/core"
)

// ConversationBuilder helps construct persisted conversation snapshots with
// fluent chaining for tests. Assistant turns are stored as JSON-encoded event
// payloads, matching the doubly-encoded wire shape.
// Example:
//
//	conv := NewConversationBuilder("conv-1").
//		Title("Order help").
//		UserTurn("hi").
//		AssistantMessage("hello").
//		Build()
type ConversationBuilder struct {
	id     string
	title  string
	status core.Status
	turns  []core.PersistedTurn
}

// NewConversationBuilder creates a builder for a conversation with the given id.
func NewConversationBuilder(id string) *ConversationBuilder {
	return &ConversationBuilder{id: id, status: core.StatusActive}
}

// Title sets the conversation title (chainable).
func (b *ConversationBuilder) Title(t string) *ConversationBuilder { b.title = t; return b }

// Status sets the conversation status (chainable).
func (b *ConversationBuilder) Status(s core.Status) *ConversationBuilder { b.status = s; return b }

// UserTurn appends a plain text user turn (chainable).
func (b *ConversationBuilder) UserTurn(text string) *ConversationBuilder {
	b.turns = append(b.turns, core.PersistedTurn{Role: core.RoleUser, Content: text})
	return b
}

// AssistantRaw appends an assistant turn with verbatim stored content, for
// exercising decode fallbacks (chainable).
func (b *ConversationBuilder) AssistantRaw(content string) *ConversationBuilder {
	b.turns = append(b.turns, core.PersistedTurn{Role: core.RoleAssistant, Content: content})
	return b
}

// AssistantMessage appends an assistant turn encoding a message event (chainable).
func (b *ConversationBuilder) AssistantMessage(text string) *ConversationBuilder {
	return b.AssistantPayload(map[string]any{"event": "message", "message": text})
}

// AssistantPayload appends an assistant turn encoding the given payload as
// JSON (chainable). Panics on unmarshalable payloads; tests only.
func (b *ConversationBuilder) AssistantPayload(payload map[string]any) *ConversationBuilder {
	raw, err := json.Marshal(payload)
	if err != nil {
		panic(fmt.Sprintf("testutil: encode assistant payload: %v", err))
	}
	return b.AssistantRaw(string(raw))
}

// Build returns the assembled conversation snapshot.
func (b *ConversationBuilder) Build() core.Conversation {
	turns := make([]core.PersistedTurn, len(b.turns))
	copy(turns, b.turns)
	return core.Conversation{ID: b.id, Title: b.title, Status: b.status, Turns: turns}
}

// EventPayload encodes an event payload map as the JSON string shape the
// assistant emits on the wire.
func EventPayload(payload map[string]any) string {
	raw, err := json.Marshal(payload)
	if err != nil {
		panic(fmt.Sprintf("testutil: encode event payload: %v", err))
	}
	return string(raw)
}
