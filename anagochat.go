// Package anagochat provides a high-level façade over the conversation
// dispatcher and its collaborators (backend, catalog index, action executor
// and logging) enabling quick construction of the storefront chat core. Most
// applications interact with this package by:
//  1. Creating an AnagoChat via New() with a backend (optionally overriding
//     the default in-memory catalog index, cart service and navigator)
//  2. Refreshing the catalog index from the product listing
//  3. Sending user messages (Send) and rendering Messages()
//
// The façade delegates orchestration to dispatch.Dispatcher while keeping
// setup and usage ergonomics concise. All defaults are safe for local
// development and testing; production deployments supply the HTTP API client
// and a structured logger.
package anagochat

import (
	"context"

	"github.com/TristanRenard/anagochat/action"
	"github.com/TristanRenard/anagochat/backend"
	"github.com/TristanRenard/anagochat/catalog"
	"github.com/TristanRenard/anagochat/core"
	"github.com/TristanRenard/anagochat/dispatch"
	"github.com/TristanRenard/anagochat/logging"
)

// Options configures the AnagoChat instance.
type Options struct {
	// Cart issues remote cart mutations for do-events. Nil disables cart
	// side effects.
	Cart core.CartService
	// Navigator receives go-to-page instructions. Nil disables navigation.
	Navigator core.Navigator
	// Index is the catalog lookup used for enrichment (defaults to an empty
	// in-memory index refreshable via RefreshCatalog).
	Index *catalog.InMemoryIndex
	// MaxParallelMutations limits the cart fan-out concurrency. 0 means one
	// goroutine per line item.
	MaxParallelMutations int
	// OnCartChanged is invoked after a cart fan-out settles.
	OnCartChanged func()
	// Greeting and FallbackText override the dispatcher defaults.
	Greeting     string
	FallbackText string
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AnagoChat is the high-level façade aggregating the dispatcher and services.
type AnagoChat struct {
	opts       Options
	backend    backend.Backend
	index      *catalog.InMemoryIndex
	dispatcher *dispatch.Dispatcher
}

// New creates a new AnagoChat instance with optional overrides. Any unset
// service is initialized with a safe default.
func New(b backend.Backend, optFns ...func(o *Options)) *AnagoChat {
	opts := Options{
		Index:  catalog.NewInMemoryIndex(),
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Index == nil {
		opts.Index = catalog.NewInMemoryIndex()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	var executor *action.Executor
	if opts.Cart != nil || opts.Navigator != nil {
		executor = action.NewExecutor(opts.Cart, opts.Navigator, func(o *action.Options) {
			o.MaxParallel = opts.MaxParallelMutations
			o.Logger = opts.Logger
		})
	}

	d := dispatch.New(b, func(o *dispatch.Options) {
		o.Catalog = opts.Index
		o.Executor = executor
		o.OnCartChanged = opts.OnCartChanged
		o.Logger = opts.Logger
		if opts.Greeting != "" {
			o.Greeting = opts.Greeting
		}
		if opts.FallbackText != "" {
			o.FallbackText = opts.FallbackText
		}
	})

	return &AnagoChat{opts: opts, backend: b, index: opts.Index, dispatcher: d}
}

// Dispatcher exposes the underlying conversation dispatcher.
func (a *AnagoChat) Dispatcher() *dispatch.Dispatcher { return a.dispatcher }

// Send dispatches one user message and returns the resulting assistant message.
func (a *AnagoChat) Send(ctx context.Context, text string) (core.Message, error) {
	return a.dispatcher.Send(ctx, text)
}

// Messages returns the current transcript in order.
func (a *AnagoChat) Messages() []core.Message { return a.dispatcher.Messages() }

// StartNew resets to a fresh conversation.
func (a *AnagoChat) StartNew() { a.dispatcher.StartNew() }

// Load replaces the current conversation with a persisted snapshot.
func (a *AnagoChat) Load(conv core.Conversation) { a.dispatcher.Load(conv) }

// LoadConversations fetches the persisted conversation list from the backend.
func (a *AnagoChat) LoadConversations(ctx context.Context) ([]core.Conversation, error) {
	return a.backend.LoadConversations(ctx)
}

// RefreshCatalog replaces the catalog index snapshot from the product listing.
func (a *AnagoChat) RefreshCatalog(ctx context.Context, lister core.ProductLister) error {
	return a.index.Refresh(ctx, lister)
}
