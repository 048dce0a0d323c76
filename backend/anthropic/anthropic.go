// Package anthropic provides a development backend.Backend over the Anthropic
// Messages API, mirroring backend/openai: the model is prompted to speak the
// assistant event JSON protocol and the raw completion text is returned as the
// loose reply. Conversation identity and history are local to the process.
package anthropic

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/TristanRenard/anagochat/backend"
	"github.com/TristanRenard/anagochat/core"
)

// Options configure the Anthropic development backend (model id, temperature,
// max tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
	// Instructions overrides the default protocol system prompt.
	Instructions string
}

// Backend wraps the Anthropic Messages API behind backend.Backend.
type Backend struct {
	client *anthropic.Client
	opts   Options
	convs  *backend.LocalConversations
}

var _ backend.Backend = (*Backend)(nil)

// New creates a development backend using the official client.
func New(optFns ...func(o *Options)) *Backend {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Backend{client: &client, opts: opts, convs: backend.NewLocalConversations()}
}

// NewFromClient creates a development backend from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Backend {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Backend{client: client, opts: opts, convs: backend.NewLocalConversations()}
}

func defaultOptions() Options {
	return Options{
		Model:        anthropic.ModelClaude3_5Sonnet20241022,
		Temperature:  0.7,
		MaxTokens:    1024,
		Instructions: backend.ProtocolInstructions,
	}
}

// SendTurn implements backend.Backend.
func (b *Backend) SendTurn(ctx context.Context, conversationID, text string) (*backend.TurnReply, error) {
	id := b.convs.Resolve(conversationID, text)

	var messages []anthropic.MessageParam
	for _, turn := range b.convs.History(id) {
		if turn.Role == core.RoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(turn.Content)))
			continue
		}
		messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(turn.Content)))
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(text)))

	resp, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       b.opts.Model,
		Messages:    messages,
		MaxTokens:   b.opts.MaxTokens,
		Temperature: anthropic.Float(b.opts.Temperature),
		System:      []anthropic.TextBlockParam{{Text: b.opts.Instructions}},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	var replyText string
	for _, block := range resp.Content {
		if block.Type == "text" {
			replyText += block.AsText().Text
		}
	}

	snapshot := b.convs.Record(id, text, replyText)
	return &backend.TurnReply{Reply: replyText, Conversation: snapshot}, nil
}

// LoadConversations implements backend.Backend returning snapshots of the
// process-local conversations.
func (b *Backend) LoadConversations(_ context.Context) ([]core.Conversation, error) {
	return b.convs.Snapshots(), nil
}
