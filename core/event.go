package core

// AssistantEvent is a closed tagged union over the three reply kinds emitted
// by the remote assistant. Concrete event types implement the unexported
// isAssistantEvent marker enabling exhaustive switches downstream; every
// normalized reply is exactly one of MessageEvent, SuggestEvent or DoEvent.
type AssistantEvent interface{ isAssistantEvent() }

// MessageEvent is a plain conversational reply with no attached behavior.
// It is also the universal fallback: any reply that cannot be classified
// degrades to a MessageEvent carrying the raw text.
type MessageEvent struct {
	Text string
}

// isAssistantEvent implements the AssistantEvent interface for MessageEvent.
func (MessageEvent) isAssistantEvent() {}

// SuggestEvent is a reply recommending products. Refs are partial references
// as emitted by the assistant; titles are filled in later by enrichment and
// are never required for correctness.
type SuggestEvent struct {
	Text        string
	ProductRefs []ProductRef
}

// isAssistantEvent implements the AssistantEvent interface for SuggestEvent.
func (SuggestEvent) isAssistantEvent() {}

// DoEvent is a reply instructing the client to perform a side effect: a cart
// mutation over ProductRefs or a navigation to TargetPage. DoEvents are the
// only event kind that ever triggers remote mutations.
type DoEvent struct {
	Text        string
	Action      string
	ProductRefs []ProductRef
	TargetPage  string
}

// isAssistantEvent implements the AssistantEvent interface for DoEvent.
func (DoEvent) isAssistantEvent() {}

// Kind maps an event to its EventKind tag.
func Kind(ev AssistantEvent) EventKind {
	switch ev.(type) {
	case SuggestEvent:
		return EventSuggest
	case DoEvent:
		return EventDo
	default:
		return EventMessage
	}
}
