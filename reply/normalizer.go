package reply

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/TristanRenard/anagochat/core"
)

// payload is the wire shape of an assistant reply. All fields are optional;
// classification trusts the event tag and degrades to a plain message when it
// is absent or unrecognized.
type payload struct {
	Event       string       `json:"event"`
	Message     string       `json:"message"`
	Action      string       `json:"action"`
	ProductList []payloadRef `json:"productList"`
	TargetPage  string       `json:"targetPage"`
}

// payloadRef mirrors one productList entry. Quantity 0 means absent.
type payloadRef struct {
	ID       flexID `json:"id"`
	Quantity int    `json:"quantity"`
}

// flexID accepts product ids emitted as either JSON strings or numbers.
type flexID string

// UnmarshalJSON implements json.Unmarshaler for flexID.
func (f *flexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("product id is neither string nor number: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

// Normalize converts a raw assistant reply into a well-formed AssistantEvent.
// It never returns nil and never panics: any value that cannot be decoded or
// classified resolves to a core.MessageEvent carrying the original text.
func Normalize(raw any) core.AssistantEvent {
	switch v := raw.(type) {
	case nil:
		return core.MessageEvent{}
	case core.AssistantEvent:
		return v
	case string:
		return normalizeString(v)
	case []byte:
		return normalizeString(string(v))
	case json.RawMessage:
		return normalizeString(string(v))
	default:
		return normalizeStructured(v)
	}
}

// normalizeString handles the JSON-encoded reply shape. gjson probes the
// loose payload first: non-JSON is rejected cheaply and a payload carrying no
// event tag short-circuits to a message (using its own message text when
// present) without ever running the strict decode. Only tagged payloads go
// through the encoding/json struct decode, whose failure also falls back to a
// plain message with the original string as content.
func normalizeString(s string) core.AssistantEvent {
	trimmed := strings.TrimSpace(s)
	if !gjson.Valid(trimmed) {
		return core.MessageEvent{Text: s}
	}
	if tag := gjson.Get(trimmed, "event"); !tag.Exists() {
		if msg := gjson.Get(trimmed, "message"); msg.Exists() {
			return core.MessageEvent{Text: msg.String()}
		}
		return core.MessageEvent{Text: s}
	}
	var p payload
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return core.MessageEvent{Text: s}
	}
	return fromPayload(p, s)
}

// normalizeStructured handles replies that arrive as already-decoded values
// (maps from a transport layer JSON decode, or caller-built structs). The
// round-trip through encoding/json keeps the classification rules identical
// to the string path.
func normalizeStructured(v any) core.AssistantEvent {
	b, err := json.Marshal(v)
	if err != nil {
		return core.MessageEvent{Text: fmt.Sprintf("%v", v)}
	}
	var p payload
	if err := json.Unmarshal(b, &p); err != nil {
		return core.MessageEvent{Text: fmt.Sprintf("%v", v)}
	}
	return fromPayload(p, string(b))
}

// fromPayload classifies a decoded payload by its event tag. An absent or
// unrecognized tag is still a message, never an error; rawText is used as a
// last-resort content when the payload carries no message of its own.
func fromPayload(p payload, rawText string) core.AssistantEvent {
	text := p.Message
	switch strings.ToLower(strings.TrimSpace(p.Event)) {
	case string(core.EventSuggest):
		return core.SuggestEvent{Text: text, ProductRefs: productRefs(p.ProductList)}
	case string(core.EventDo):
		return core.DoEvent{
			Text:        text,
			Action:      p.Action,
			ProductRefs: productRefs(p.ProductList),
			TargetPage:  p.TargetPage,
		}
	case string(core.EventMessage):
		return core.MessageEvent{Text: text}
	default:
		if text == "" {
			text = rawText
		}
		return core.MessageEvent{Text: text}
	}
}

func productRefs(list []payloadRef) []core.ProductRef {
	if len(list) == 0 {
		return nil
	}
	refs := make([]core.ProductRef, len(list))
	for i, e := range list {
		refs[i] = core.ProductRef{ID: string(e.ID), Quantity: e.Quantity}
	}
	return refs
}
