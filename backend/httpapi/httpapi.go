// Package httpapi implements the storefront API collaborators over plain
// HTTP/JSON: the assistant backend (turns, conversation history), the cart
// mutation service and the product listing that feeds the catalog index. It
// adapts the wire envelopes into core types and keeps transport failures
// opaque, as the dispatcher expects.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/TristanRenard/anagochat/backend"
	"github.com/TristanRenard/anagochat/core"
)

// Options configure the HTTP API client.
type Options struct {
	// HTTPClient is the underlying transport. Defaults to http.DefaultClient;
	// timeouts are its responsibility, this layer enforces none.
	HTTPClient *http.Client
	// AuthToken, when set, is sent as a bearer token on every request.
	AuthToken string
}

// Client talks to the storefront backend API. It implements backend.Backend,
// core.CartService and core.ProductLister.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Interface compliance (compile-time assertions)
var (
	_ backend.Backend    = (*Client)(nil)
	_ core.CartService   = (*Client)(nil)
	_ core.ProductLister = (*Client)(nil)
)

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, optFns ...func(o *Options)) *Client {
	opts := Options{HTTPClient: http.DefaultClient}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: opts.HTTPClient, token: opts.AuthToken}
}

// Wire envelopes. The reply field is deliberately left loose (json.RawMessage
// decoded to any): the server may emit a structured event object or a
// JSON-encoded string and the reply normalizer owns the distinction.

type turnRequest struct {
	ConversationID string `json:"conversation_id,omitempty"`
	Message        string `json:"message"`
}

type turnResponse struct {
	Reply        json.RawMessage `json:"reply"`
	Conversation conversationDTO `json:"conversation"`
}

type conversationDTO struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Status string    `json:"status"`
	Turns  []turnDTO `json:"turns,omitempty"`
}

type turnDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type conversationsResponse struct {
	Conversations []conversationDTO `json:"conversations"`
}

type cartMutationRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Op        string `json:"op"`
}

type productsResponse struct {
	Products []core.CatalogProduct `json:"products"`
}

// SendTurn implements backend.Backend.
func (c *Client) SendTurn(ctx context.Context, conversationID, text string) (*backend.TurnReply, error) {
	var resp turnResponse
	err := c.do(ctx, http.MethodPost, "/chat/turns", turnRequest{ConversationID: conversationID, Message: text}, &resp)
	if err != nil {
		return nil, err
	}
	return &backend.TurnReply{Reply: looseReply(resp.Reply), Conversation: resp.Conversation.toCore()}, nil
}

// LoadConversations implements backend.Backend.
func (c *Client) LoadConversations(ctx context.Context) ([]core.Conversation, error) {
	var resp conversationsResponse
	if err := c.do(ctx, http.MethodGet, "/chat/conversations", nil, &resp); err != nil {
		return nil, err
	}
	convs := make([]core.Conversation, len(resp.Conversations))
	for i, dto := range resp.Conversations {
		convs[i] = dto.toCore()
	}
	return convs, nil
}

// MutateCart implements core.CartService. One call per line item.
func (c *Client) MutateCart(ctx context.Context, ref core.ProductRef, op core.CartOp) error {
	req := cartMutationRequest{ProductID: ref.ID, Quantity: ref.Quantity, Op: string(op)}
	return c.do(ctx, http.MethodPost, "/cart/mutations", req, nil)
}

// ListProducts implements core.ProductLister.
func (c *Client) ListProducts(ctx context.Context) ([]core.CatalogProduct, error) {
	var resp productsResponse
	if err := c.do(ctx, http.MethodGet, "/products", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

func (dto conversationDTO) toCore() core.Conversation {
	conv := core.Conversation{ID: dto.ID, Title: dto.Title, Status: core.ParseStatus(dto.Status)}
	for _, t := range dto.Turns {
		role := core.RoleUser
		if core.Role(t.Role) == core.RoleAssistant {
			role = core.RoleAssistant
		}
		conv.Turns = append(conv.Turns, core.PersistedTurn{Role: role, Content: t.Content})
	}
	return conv
}

// looseReply maps the raw reply field onto the any-typed value the normalizer
// expects: a JSON string stays a string, anything else is decoded generically.
func looseReply(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
