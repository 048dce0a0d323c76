// Package openai provides a development backend.Backend over the OpenAI Chat
// Completions API. The model is prompted to speak the assistant event JSON
// protocol and the raw completion text is returned as the loose reply, so the
// normal reply-normalization path handles it exactly like a production reply.
// Conversation identity and history are local to the process.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/TristanRenard/anagochat/backend"
	"github.com/TristanRenard/anagochat/core"
)

// Options configure the OpenAI development backend.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
	// Instructions overrides the default protocol system prompt.
	Instructions string
}

// Backend wraps the OpenAI Chat Completions API behind backend.Backend.
type Backend struct {
	client *openai.Client
	opts   Options
	convs  *backend.LocalConversations
}

var _ backend.Backend = (*Backend)(nil)

// New creates a development backend using the official client (credentials
// from the environment).
func New(optFns ...func(o *Options)) *Backend {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates a development backend from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Backend {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 1024,
		Instructions:        backend.ProtocolInstructions,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Backend{client: client, opts: opts, convs: backend.NewLocalConversations()}
}

// SendTurn implements backend.Backend.
func (b *Backend) SendTurn(ctx context.Context, conversationID, text string) (*backend.TurnReply, error) {
	id := b.convs.Resolve(conversationID, text)

	messages := []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(b.opts.Instructions)}
	for _, turn := range b.convs.History(id) {
		if turn.Role == core.RoleAssistant {
			messages = append(messages, openai.AssistantMessage(turn.Content))
			continue
		}
		messages = append(messages, openai.UserMessage(turn.Content))
	}
	messages = append(messages, openai.UserMessage(text))

	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               b.opts.Model,
		Temperature:         openai.Float(b.opts.Temperature),
		MaxCompletionTokens: openai.Int(b.opts.MaxCompletionTokens),
	})
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}
	replyText := resp.Choices[0].Message.Content

	snapshot := b.convs.Record(id, text, replyText)
	return &backend.TurnReply{Reply: replyText, Conversation: snapshot}, nil
}

// LoadConversations implements backend.Backend returning snapshots of the
// process-local conversations.
func (b *Backend) LoadConversations(_ context.Context) ([]core.Conversation, error) {
	return b.convs.Snapshots(), nil
}
