package transcript

import (
	"github.com/TristanRenard/anagochat/core"
	"github.com/TristanRenard/anagochat/reply"
)

// Decode converts the ordered persisted turns of a conversation into the
// ordered display message list, one message per turn. It cannot fail: user
// turns are taken verbatim and assistant turns go through the reply
// normalizer, whose fallback already absorbs any decode failure.
func Decode(turns []core.PersistedTurn) []core.Message {
	msgs := make([]core.Message, 0, len(turns))
	for _, turn := range turns {
		msgs = append(msgs, DecodeTurn(turn))
	}
	return msgs
}

// DecodeTurn converts a single persisted turn into a message.
func DecodeTurn(turn core.PersistedTurn) core.Message {
	if turn.Role != core.RoleAssistant {
		return core.NewUserMessage(turn.Content)
	}
	return MessageFromEvent(reply.Normalize(turn.Content))
}

// MessageFromEvent projects a normalized assistant event onto a transcript
// message. The same projection is used live by the dispatcher, so a replayed
// conversation renders identically to the session that produced it.
func MessageFromEvent(ev core.AssistantEvent) core.Message {
	msg := core.NewAssistantMessage("")
	msg.Kind = core.Kind(ev)
	switch e := ev.(type) {
	case core.SuggestEvent:
		msg.Content = e.Text
		msg.ProductRefs = e.ProductRefs
	case core.DoEvent:
		msg.Content = e.Text
		msg.ProductRefs = e.ProductRefs
		msg.Action = e.Action
		msg.TargetPage = e.TargetPage
	case core.MessageEvent:
		msg.Content = e.Text
	}
	return msg
}
