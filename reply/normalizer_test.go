package reply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TristanRenard/anagochat/core"
)

func TestNormalize_StructuredTagIsPreserved(t *testing.T) {
	cases := []struct {
		name string
		in   map[string]any
		want core.EventKind
	}{
		{"message", map[string]any{"event": "message", "message": "Bonjour"}, core.EventMessage},
		{"suggest", map[string]any{"event": "suggest", "message": "Voici"}, core.EventSuggest},
		{"do", map[string]any{"event": "do", "message": "ok", "action": "add to cart"}, core.EventDo},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := Normalize(tc.in)
			assert.Equal(t, tc.want, core.Kind(ev))
		})
	}
}

func TestNormalize_StructuredMessageContent(t *testing.T) {
	ev := Normalize(map[string]any{"event": "message", "message": "Bonjour"})
	msg, ok := ev.(core.MessageEvent)
	require.True(t, ok)
	assert.Equal(t, "Bonjour", msg.Text)
}

func TestNormalize_StringObjectIdempotence(t *testing.T) {
	raw := `{"event":"suggest","message":"Voici","productList":[{"id":7}]}`
	fromString := Normalize(raw)
	fromObject := Normalize(map[string]any{
		"event":       "suggest",
		"message":     "Voici",
		"productList": []any{map[string]any{"id": 7}},
	})
	assert.Equal(t, fromObject, fromString)

	sg, ok := fromString.(core.SuggestEvent)
	require.True(t, ok)
	require.Len(t, sg.ProductRefs, 1)
	assert.Equal(t, "7", sg.ProductRefs[0].ID)
}

func TestNormalize_MalformedStringFallsBack(t *testing.T) {
	for _, raw := range []string{"not json", "{broken", "", "   "} {
		ev := Normalize(raw)
		msg, ok := ev.(core.MessageEvent)
		require.Truef(t, ok, "raw %q should normalize to a message event, got %T", raw, ev)
		assert.Equal(t, raw, msg.Text)
	}
}

func TestNormalize_MissingTagIsMessage(t *testing.T) {
	// decode succeeds but there is no event tag: still a message, not an error.
	ev := Normalize(`{"message":"hello there"}`)
	msg, ok := ev.(core.MessageEvent)
	require.True(t, ok)
	assert.Equal(t, "hello there", msg.Text)

	ev = Normalize(map[string]any{"something": "else"})
	_, ok = ev.(core.MessageEvent)
	assert.True(t, ok)
}

func TestNormalize_NoTagNoMessageKeepsRawString(t *testing.T) {
	raw := `{"something":"else"}`
	ev := Normalize(raw)
	msg, ok := ev.(core.MessageEvent)
	require.True(t, ok)
	assert.Equal(t, raw, msg.Text)
}

func TestNormalize_TaggedButUndecodablePayloadFallsBack(t *testing.T) {
	// the tag probe recognizes an event, but the strict decode rejects the
	// payload shape: still a message carrying the original string.
	raw := `{"event":"suggest","message":"v","productList":"oops"}`
	ev := Normalize(raw)
	msg, ok := ev.(core.MessageEvent)
	require.True(t, ok)
	assert.Equal(t, raw, msg.Text)
}

func TestNormalize_UnrecognizedTagIsMessage(t *testing.T) {
	ev := Normalize(`{"event":"dance","message":"??"}`)
	msg, ok := ev.(core.MessageEvent)
	require.True(t, ok)
	assert.Equal(t, "??", msg.Text)
}

func TestNormalize_DoEventFields(t *testing.T) {
	raw := `{"event":"do","message":"On it","action":"remove from cart","productList":[{"id":"3","quantity":2},{"id":9}],"targetPage":""}`
	ev := Normalize(raw)
	do, ok := ev.(core.DoEvent)
	require.True(t, ok)
	assert.Equal(t, "remove from cart", do.Action)
	assert.Equal(t, "On it", do.Text)
	require.Len(t, do.ProductRefs, 2)
	assert.Equal(t, core.ProductRef{ID: "3", Quantity: 2}, do.ProductRefs[0])
	assert.Equal(t, core.ProductRef{ID: "9"}, do.ProductRefs[1])
}

func TestNormalize_GoToPage(t *testing.T) {
	ev := Normalize(`{"event":"do","message":"Taking you there","action":"go to page","targetPage":"cart"}`)
	do, ok := ev.(core.DoEvent)
	require.True(t, ok)
	assert.Equal(t, "cart", do.TargetPage)
	assert.Empty(t, do.ProductRefs)
}

func TestNormalize_NilAndPassthrough(t *testing.T) {
	assert.Equal(t, core.MessageEvent{}, Normalize(nil))

	// an already-normalized event passes through untouched
	orig := core.SuggestEvent{Text: "x", ProductRefs: []core.ProductRef{{ID: "1"}}}
	assert.Equal(t, orig, Normalize(orig))
}

func TestNormalize_TagCaseInsensitive(t *testing.T) {
	ev := Normalize(`{"event":"  Suggest ","message":"v"}`)
	assert.Equal(t, core.EventSuggest, core.Kind(ev))
}
