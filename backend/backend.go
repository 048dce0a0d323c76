package backend

import (
	"context"

	"github.com/TristanRenard/anagochat/core"
)

// ProtocolInstructions is the system prompt used by the development backends
// to make a raw model speak the assistant event protocol. The production API
// embeds an equivalent prompt server-side; it is exported here so custom
// backends can reuse it verbatim.
const ProtocolInstructions = `You are the shopping assistant of an online storefront.
Always answer with a single JSON object and nothing else, using this shape:
{"event":"message","message":"<text>"} for a plain reply,
{"event":"suggest","message":"<text>","productList":[{"id":"<productId>","quantity":<n>}]} to recommend products,
{"event":"do","message":"<text>","action":"add to cart"|"remove from cart","productList":[{"id":"<productId>","quantity":<n>}]} to mutate the cart,
{"event":"do","message":"<text>","action":"go to page","targetPage":"<page>"} to navigate.
Omit quantity when it is 1. Never invent product ids.`

// TurnReply is the envelope returned by the remote API for one user turn.
// Reply is the loosely typed assistant payload: either a structured value
// already shaped like an event or a string containing a JSON-encoded
// equivalent. The reply normalizer owns its interpretation; this package only
// carries it. Conversation is the authoritative post-turn snapshot (id, title,
// status) and may omit Turns.
type TurnReply struct {
	Reply        any
	Conversation core.Conversation
}

// Backend is the remote assistant collaborator. Errors surface as opaque
// transport failures; the dispatcher degrades them to a fallback assistant
// message rather than propagating them to the caller.
type Backend interface {
	// SendTurn submits one user turn. conversationID is empty for the first
	// turn of a new conversation; the reply envelope carries the id assigned
	// by the server.
	SendTurn(ctx context.Context, conversationID, text string) (*TurnReply, error)

	// LoadConversations returns the caller's persisted conversations with
	// their stored turns, most recent first.
	LoadConversations(ctx context.Context) ([]core.Conversation, error)
}
