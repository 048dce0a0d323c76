package backend

import (
	"sync"

	"github.com/TristanRenard/anagochat/core"
)

// LocalConversations is the process-local conversation store shared by the
// development backends. It stands in for the server-owned history: turn ids,
// titles and transcripts live in memory and vanish with the process.
type LocalConversations struct {
	mu    sync.Mutex
	convs map[string]*localConversation
}

type localConversation struct {
	id    string
	title string
	turns []core.PersistedTurn
}

// NewLocalConversations creates an empty store.
func NewLocalConversations() *LocalConversations {
	return &LocalConversations{convs: make(map[string]*localConversation)}
}

// Resolve returns the conversation id, lazily creating the conversation when
// the id is empty or unknown. firstText seeds the title of a new conversation.
func (s *LocalConversations) Resolve(id, firstText string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" {
		if _, ok := s.convs[id]; ok {
			return id
		}
	}
	c := &localConversation{id: core.NewID(), title: DeriveTitle(firstText)}
	s.convs[c.id] = c
	return c.id
}

// History returns a copy of the persisted turns for id, oldest first.
func (s *LocalConversations) History(id string) []core.PersistedTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.convs[id]
	if !ok {
		return nil
	}
	turns := make([]core.PersistedTurn, len(c.turns))
	copy(turns, c.turns)
	return turns
}

// Record appends a completed user/assistant exchange to the conversation and
// returns its envelope snapshot. Recording against an unknown id is a no-op
// returning a zero conversation.
func (s *LocalConversations) Record(id, userText, assistantText string) core.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.convs[id]
	if !ok {
		return core.Conversation{}
	}
	c.turns = append(c.turns,
		core.PersistedTurn{Role: core.RoleUser, Content: userText},
		core.PersistedTurn{Role: core.RoleAssistant, Content: assistantText},
	)
	return core.Conversation{ID: c.id, Title: c.title, Status: core.StatusActive}
}

// Snapshots returns every stored conversation with its turns copied.
func (s *LocalConversations) Snapshots() []core.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	convs := make([]core.Conversation, 0, len(s.convs))
	for _, c := range s.convs {
		turns := make([]core.PersistedTurn, len(c.turns))
		copy(turns, c.turns)
		convs = append(convs, core.Conversation{ID: c.id, Title: c.title, Status: core.StatusActive, Turns: turns})
	}
	return convs
}

// DeriveTitle derives a conversation title from the first user text,
// truncating to 40 runes so multi-byte characters are never split.
func DeriveTitle(text string) string {
	const max = 40
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
