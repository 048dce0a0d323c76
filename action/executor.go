package action

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/TristanRenard/anagochat/core"
	"github.com/TristanRenard/anagochat/logging"
)

// Recognized do-event actions. Matching is case-insensitive after trimming;
// anything else is a logged no-op.
const (
	ActionAddToCart      = "add to cart"
	ActionRemoveFromCart = "remove from cart"
	ActionGoToPage       = "go to page"
)

// Outcome aggregates the result of executing one do-event. The fan-out always
// settles fully: Attempted counts issued cart mutations, Failed counts the
// ones that errored, and Errs holds their individual errors in no particular
// order. CartTouched signals that cart-dependent state should be refreshed:
// it is set as soon as at least one mutation was issued, whether or not every
// call succeeded, and stays false when the product list was empty.
type Outcome struct {
	Attempted   int
	Failed      int
	Errs        []error
	CartTouched bool
	Navigated   bool
}

// Options configures the Executor.
type Options struct {
	// MaxParallel limits concurrent cart mutation calls. 0 or less means no
	// explicit limit (one goroutine per product ref).
	MaxParallel int
	// Logger receives per-call and aggregate execution records.
	Logger logging.Logger
}

// Executor performs the side effects of do-events against the cart and
// navigation collaborators. Safe for concurrent use.
type Executor struct {
	cart        core.CartService
	nav         core.Navigator
	maxParallel int
	logger      logging.Logger
}

// NewExecutor constructs an Executor with optional overrides.
func NewExecutor(cart core.CartService, nav core.Navigator, optFns ...func(o *Options)) *Executor {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Executor{cart: cart, nav: nav, maxParallel: opts.MaxParallel, logger: opts.Logger}
}

// Execute performs the side effect instructed by the event and reports the
// aggregate outcome. It never returns an error: partial cart failures are a
// deliberate best-effort policy and unrecognized actions are no-ops.
func (e *Executor) Execute(ctx context.Context, ev core.DoEvent) Outcome {
	switch strings.ToLower(strings.TrimSpace(ev.Action)) {
	case ActionAddToCart:
		return e.mutateAll(ctx, core.CartAdd, ev.ProductRefs)
	case ActionRemoveFromCart:
		return e.mutateAll(ctx, core.CartRemove, ev.ProductRefs)
	case ActionGoToPage:
		return e.navigate(ev.TargetPage)
	default:
		e.logger.Warn("action.unrecognized", "action", ev.Action)
		return Outcome{}
	}
}

// mutateAll issues one independent cart mutation per ref as an unordered
// fan-out and waits for the full set before declaring the action complete.
// Failures are recorded but do not cancel siblings; there is no rollback.
func (e *Executor) mutateAll(ctx context.Context, op core.CartOp, refs []core.ProductRef) Outcome {
	n := len(refs)
	if n == 0 {
		e.logger.Debug("action.cart.empty", "op", string(op))
		return Outcome{}
	}

	maxPar := e.maxParallel
	if maxPar <= 0 || maxPar > n {
		maxPar = n
	}

	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	sem := make(chan struct{}, maxPar)

	batchStart := time.Now()
	for _, ref := range refs {
		wg.Add(1)
		sem <- struct{}{}
		go func(ref core.ProductRef) {
			defer wg.Done()
			defer func() { <-sem }()

			if ref.Quantity <= 0 {
				ref.Quantity = 1
			}

			callStart := time.Now()
			var err error
			func() { // panic safety
				defer func() {
					if r := recover(); r != nil {
						err = fmt.Errorf("cart mutation panic: %v\n%s", r, debug.Stack())
					}
				}()
				err = e.cart.MutateCart(ctx, ref, op)
			}()

			if err != nil {
				e.logger.Error(
					"action.cart.failed",
					"op", string(op),
					"product_id", ref.ID,
					"quantity", ref.Quantity,
					"duration_ms", time.Since(callStart).Milliseconds(),
					"error", err.Error(),
				)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s product %s: %w", op, ref.ID, err))
				mu.Unlock()
				return
			}
			e.logger.Debug(
				"action.cart.ok",
				"op", string(op),
				"product_id", ref.ID,
				"quantity", ref.Quantity,
				"duration_ms", time.Since(callStart).Milliseconds(),
			)
		}(ref)
	}
	wg.Wait()

	e.logger.Info(
		"action.cart.batch.complete",
		"op", string(op),
		"count", n,
		"failed", len(errs),
		"parallelism", maxPar,
		"duration_ms", time.Since(batchStart).Milliseconds(),
	)

	return Outcome{Attempted: n, Failed: len(errs), Errs: errs, CartTouched: true}
}

// navigate hands the target page off to the navigator. Only executed when a
// target is present; fire and forget, no fan-out semantics.
func (e *Executor) navigate(targetPage string) Outcome {
	if targetPage == "" {
		e.logger.Warn("action.navigate.no_target")
		return Outcome{}
	}
	e.nav.Navigate(targetPage)
	e.logger.Info("action.navigate", "target_page", targetPage)
	return Outcome{Navigated: true}
}
