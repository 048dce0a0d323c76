package dispatch

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/TristanRenard/anagochat/action"
	"github.com/TristanRenard/anagochat/backend"
	"github.com/TristanRenard/anagochat/catalog"
	"github.com/TristanRenard/anagochat/core"
	"github.com/TristanRenard/anagochat/logging"
	"github.com/TristanRenard/anagochat/reply"
	"github.com/TristanRenard/anagochat/transcript"
)

const (
	// DefaultGreeting seeds the transcript of a fresh conversation.
	DefaultGreeting = "Hello! How can I help you today?"
	// DefaultFallbackText is the single assistant message appended when the
	// remote call fails. It is the only error the end user ever sees from
	// this core.
	DefaultFallbackText = "Sorry, something went wrong on my side. Please try again."
)

// Options configures the Dispatcher.
type Options struct {
	// Catalog enriches product references on suggest/do events. Nil disables
	// enrichment (references pass through unmodified).
	Catalog core.CatalogIndex
	// Executor performs do-event side effects. Nil disables execution; the
	// assistant message is still appended.
	Executor *action.Executor
	// OnCartChanged, when set, is invoked after a cart fan-out settles so the
	// caller can refresh cart-dependent state. Called whether or not every
	// mutation succeeded.
	OnCartChanged func()
	// Greeting overrides DefaultGreeting.
	Greeting string
	// FallbackText overrides DefaultFallbackText.
	FallbackText string
	// Logger receives dispatch records. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Dispatcher owns the current conversation and its transcript. Only one send
// may be in flight at a time; a second send while one is pending is rejected
// with core.ErrSendInFlight, not queued. Safe for concurrent use.
type Dispatcher struct {
	backend       backend.Backend
	catalogIndex  core.CatalogIndex
	executor      *action.Executor
	onCartChanged func()
	greeting      string
	fallback      string
	logger        logging.Logger

	history *core.Transcript

	mu       sync.Mutex // guards conv + inFlight
	conv     core.Conversation
	inFlight bool
}

// New constructs a Dispatcher in the New state (no conversation id, transcript
// seeded with the greeting).
func New(b backend.Backend, optFns ...func(o *Options)) *Dispatcher {
	opts := Options{
		Greeting:     DefaultGreeting,
		FallbackText: DefaultFallbackText,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	d := &Dispatcher{
		backend:       b,
		catalogIndex:  opts.Catalog,
		executor:      opts.Executor,
		onCartChanged: opts.OnCartChanged,
		greeting:      opts.Greeting,
		fallback:      opts.FallbackText,
		logger:        opts.Logger,
		history:       core.NewTranscript(),
	}
	d.seedGreeting()
	return d
}

// Send dispatches one user message. The user message is appended immediately;
// on a successful reply the conversation identity is updated from the envelope
// and exactly one assistant message is appended and returned. On transport
// failure the fixed fallback assistant message is appended instead and the
// conversation id, title and status are left unchanged; the failure is not
// surfaced as an error. The only errors returned are core.ErrEmptyMessage and
// core.ErrSendInFlight.
func (d *Dispatcher) Send(ctx context.Context, text string) (core.Message, error) {
	if strings.TrimSpace(text) == "" {
		return core.Message{}, core.ErrEmptyMessage
	}

	d.mu.Lock()
	if d.inFlight {
		d.mu.Unlock()
		return core.Message{}, core.ErrSendInFlight
	}
	d.inFlight = true
	convID := d.conv.ID
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.inFlight = false
		d.mu.Unlock()
	}()

	d.history.Append(core.NewUserMessage(text))

	start := time.Now()
	turnReply, err := d.backend.SendTurn(ctx, convID, text)
	if err != nil {
		d.logger.Error("dispatch.send.transport", "error", err.Error(), "duration_ms", time.Since(start).Milliseconds())
		fallback := core.NewAssistantMessage(d.fallback)
		d.history.Append(fallback)
		return fallback, nil
	}

	d.mu.Lock()
	d.conv = core.Conversation{
		ID:     turnReply.Conversation.ID,
		Title:  turnReply.Conversation.Title,
		Status: turnReply.Conversation.Status,
	}
	d.mu.Unlock()

	ev := d.enrich(reply.Normalize(turnReply.Reply))

	if do, ok := ev.(core.DoEvent); ok && d.executor != nil {
		outcome := d.executor.Execute(ctx, do)
		if outcome.CartTouched && d.onCartChanged != nil {
			d.onCartChanged()
		}
	}

	msg := transcript.MessageFromEvent(ev)
	d.history.Append(msg)
	d.logger.Info(
		"dispatch.send.ok",
		"event_kind", string(core.Kind(ev)),
		"conversation_id", turnReply.Conversation.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return msg, nil
}

// Load replaces the in-memory transcript with the decoded turns of the given
// conversation snapshot and adopts its id, title and status. It does not touch
// an in-flight send.
func (d *Dispatcher) Load(conv core.Conversation) {
	d.history.Replace(transcript.Decode(conv.Turns))
	d.mu.Lock()
	d.conv = core.Conversation{ID: conv.ID, Title: conv.Title, Status: conv.Status}
	d.mu.Unlock()
	d.logger.Info("dispatch.load", "conversation_id", conv.ID, "turns", len(conv.Turns), "status", string(conv.Status))
}

// StartNew resets to the New state: no conversation id, empty transcript
// seeded with one greeting assistant message carrying no event kind.
func (d *Dispatcher) StartNew() {
	d.mu.Lock()
	d.conv = core.Conversation{}
	d.mu.Unlock()
	d.seedGreeting()
	d.logger.Info("dispatch.start_new")
}

// Messages returns a defensive copy of the current transcript in order.
func (d *Dispatcher) Messages() []core.Message { return d.history.Messages() }

// ConversationID returns the server-assigned conversation id, empty while in
// the New state.
func (d *Dispatcher) ConversationID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conv.ID
}

// Title returns the server-assigned conversation title.
func (d *Dispatcher) Title() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conv.Title
}

// Status returns the current server-reported conversation status.
func (d *Dispatcher) Status() core.Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conv.Status == "" {
		return core.StatusActive
	}
	return d.conv.Status
}

// NeedsHuman reports whether the server flagged this conversation for a human
// agent. Callers may surface a distinct indicator; sending is still permitted.
func (d *Dispatcher) NeedsHuman() bool { return d.Status() == core.StatusNeedsHuman }

// enrich fills product reference titles from the catalog index where possible.
// Best effort: with no index (or an empty one) references pass through.
func (d *Dispatcher) enrich(ev core.AssistantEvent) core.AssistantEvent {
	switch e := ev.(type) {
	case core.SuggestEvent:
		e.ProductRefs = catalog.Enrich(e.ProductRefs, d.catalogIndex)
		return e
	case core.DoEvent:
		e.ProductRefs = catalog.Enrich(e.ProductRefs, d.catalogIndex)
		return e
	default:
		return ev
	}
}

func (d *Dispatcher) seedGreeting() {
	d.history.Replace([]core.Message{core.NewAssistantMessage(d.greeting)})
}
