package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TristanRenard/anagochat/core"
	"github.com/TristanRenard/anagochat/internal/testutil"
)

func TestDecode_OrderAndRoles(t *testing.T) {
	conv := testutil.NewConversationBuilder("conv-1").
		UserTurn("hi").
		AssistantMessage("hello").
		UserTurn("show me firewalls").
		AssistantPayload(map[string]any{
			"event":       "suggest",
			"message":     "Voici",
			"productList": []any{map[string]any{"id": "7"}},
		}).
		Build()

	msgs := Decode(conv.Turns)
	require.Len(t, msgs, 4)

	assert.Equal(t, core.RoleUser, msgs[0].Role)
	assert.Equal(t, "hi", msgs[0].Content)
	assert.Empty(t, msgs[0].Kind)

	assert.Equal(t, core.RoleAssistant, msgs[1].Role)
	assert.Equal(t, core.EventMessage, msgs[1].Kind)
	assert.Equal(t, "hello", msgs[1].Content)

	assert.Equal(t, "show me firewalls", msgs[2].Content)

	assert.Equal(t, core.EventSuggest, msgs[3].Kind)
	require.Len(t, msgs[3].ProductRefs, 1)
	assert.Equal(t, "7", msgs[3].ProductRefs[0].ID)
}

func TestDecode_MalformedAssistantTurnDegrades(t *testing.T) {
	conv := testutil.NewConversationBuilder("conv-2").
		AssistantRaw("not json at all").
		AssistantMessage("fine").
		Build()

	msgs := Decode(conv.Turns)
	require.Len(t, msgs, 2)

	// the malformed turn degrades to a plain message, the rest still decode
	assert.Equal(t, core.EventMessage, msgs[0].Kind)
	assert.Equal(t, "not json at all", msgs[0].Content)
	assert.Equal(t, "fine", msgs[1].Content)
}

func TestDecode_DoTurnCarriesActionMetadata(t *testing.T) {
	conv := testutil.NewConversationBuilder("conv-3").
		AssistantPayload(map[string]any{
			"event":      "do",
			"message":    "navigating",
			"action":     "go to page",
			"targetPage": "checkout",
		}).
		Build()

	msgs := Decode(conv.Turns)
	require.Len(t, msgs, 1)
	assert.Equal(t, core.EventDo, msgs[0].Kind)
	assert.Equal(t, "go to page", msgs[0].Action)
	assert.Equal(t, "checkout", msgs[0].TargetPage)
}

func TestDecode_Empty(t *testing.T) {
	assert.Empty(t, Decode(nil))
}

func TestMessageFromEvent_Projection(t *testing.T) {
	msg := MessageFromEvent(core.SuggestEvent{Text: "try", ProductRefs: []core.ProductRef{{ID: "1", Title: "A"}}})
	assert.Equal(t, core.RoleAssistant, msg.Role)
	assert.Equal(t, core.EventSuggest, msg.Kind)
	assert.Equal(t, "try", msg.Content)
	require.Len(t, msg.ProductRefs, 1)
	assert.Equal(t, "A", msg.ProductRefs[0].Title)
}
