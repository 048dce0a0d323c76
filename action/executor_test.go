package action

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TristanRenard/anagochat/core"
)

// recordingCart captures every mutation call; failFor ids return an error.
type recordingCart struct {
	mu      sync.Mutex
	calls   []cartCall
	failFor map[string]bool
	panicOn string
}

type cartCall struct {
	ref core.ProductRef
	op  core.CartOp
}

func (c *recordingCart) MutateCart(_ context.Context, ref core.ProductRef, op core.CartOp) error {
	c.mu.Lock()
	c.calls = append(c.calls, cartCall{ref: ref, op: op})
	c.mu.Unlock()
	if ref.ID == c.panicOn {
		panic("cart service blew up")
	}
	if c.failFor[ref.ID] {
		return errors.New("mutation rejected")
	}
	return nil
}

func (c *recordingCart) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func (c *recordingCart) find(id string) (cartCall, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, call := range c.calls {
		if call.ref.ID == id {
			return call, true
		}
	}
	return cartCall{}, false
}

type recordingNav struct {
	mu      sync.Mutex
	targets []string
}

func (n *recordingNav) Navigate(targetPage string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.targets = append(n.targets, targetPage)
}

func TestExecutor_AddToCartFanOut(t *testing.T) {
	cart := &recordingCart{}
	e := NewExecutor(cart, nil)

	refs := make([]core.ProductRef, 5)
	for i := range refs {
		refs[i] = core.ProductRef{ID: fmt.Sprintf("p-%d", i), Quantity: i}
	}

	outcome := e.Execute(context.Background(), core.DoEvent{Action: ActionAddToCart, ProductRefs: refs})

	assert.Equal(t, 5, outcome.Attempted)
	assert.Zero(t, outcome.Failed)
	assert.True(t, outcome.CartTouched)
	assert.Equal(t, 5, cart.callCount(), "exactly one mutation per ref")

	// quantity defaults to 1 when absent
	call, ok := cart.find("p-0")
	require.True(t, ok)
	assert.Equal(t, 1, call.ref.Quantity)
	call, _ = cart.find("p-3")
	assert.Equal(t, 3, call.ref.Quantity)
}

func TestExecutor_RemoveFromCartScenario(t *testing.T) {
	cart := &recordingCart{}
	e := NewExecutor(cart, nil)

	outcome := e.Execute(context.Background(), core.DoEvent{
		Action:      "remove from cart",
		ProductRefs: []core.ProductRef{{ID: "3", Quantity: 2}, {ID: "9"}},
	})

	assert.Equal(t, 2, outcome.Attempted)
	assert.Equal(t, 2, cart.callCount())

	call, ok := cart.find("3")
	require.True(t, ok)
	assert.Equal(t, core.CartRemove, call.op)
	assert.Equal(t, 2, call.ref.Quantity)

	call, ok = cart.find("9")
	require.True(t, ok)
	assert.Equal(t, 1, call.ref.Quantity, "quantity defaults to 1")
}

func TestExecutor_PartialFailureCompletesAggregate(t *testing.T) {
	cart := &recordingCart{failFor: map[string]bool{"b": true, "c": true}}
	e := NewExecutor(cart, nil)

	refs := []core.ProductRef{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	outcome := e.Execute(context.Background(), core.DoEvent{Action: ActionAddToCart, ProductRefs: refs})

	assert.Equal(t, 4, outcome.Attempted, "all calls issued despite failures")
	assert.Equal(t, 2, outcome.Failed)
	assert.Len(t, outcome.Errs, 2)
	assert.True(t, outcome.CartTouched, "cart refresh signaled even on partial failure")
	assert.Equal(t, 4, cart.callCount(), "failures must not cancel siblings")
}

func TestExecutor_PanicIsRecoveredAsFailure(t *testing.T) {
	cart := &recordingCart{panicOn: "boom"}
	e := NewExecutor(cart, nil)

	outcome := e.Execute(context.Background(), core.DoEvent{
		Action:      ActionAddToCart,
		ProductRefs: []core.ProductRef{{ID: "ok"}, {ID: "boom"}},
	})

	assert.Equal(t, 2, outcome.Attempted)
	assert.Equal(t, 1, outcome.Failed)
}

func TestExecutor_MaxParallelBound(t *testing.T) {
	cart := &recordingCart{}
	e := NewExecutor(cart, nil, func(o *Options) { o.MaxParallel = 2 })

	refs := make([]core.ProductRef, 10)
	for i := range refs {
		refs[i] = core.ProductRef{ID: fmt.Sprintf("p-%d", i)}
	}
	outcome := e.Execute(context.Background(), core.DoEvent{Action: ActionAddToCart, ProductRefs: refs})
	assert.Equal(t, 10, outcome.Attempted)
	assert.Equal(t, 10, cart.callCount())
}

func TestExecutor_GoToPage(t *testing.T) {
	nav := &recordingNav{}
	e := NewExecutor(nil, nav)

	outcome := e.Execute(context.Background(), core.DoEvent{Action: ActionGoToPage, TargetPage: "checkout"})
	assert.True(t, outcome.Navigated)
	assert.Equal(t, []string{"checkout"}, nav.targets)
	assert.False(t, outcome.CartTouched)
}

func TestExecutor_GoToPageWithoutTargetIsNoOp(t *testing.T) {
	nav := &recordingNav{}
	e := NewExecutor(nil, nav)

	outcome := e.Execute(context.Background(), core.DoEvent{Action: ActionGoToPage})
	assert.False(t, outcome.Navigated)
	assert.Empty(t, nav.targets)
}

func TestExecutor_UnrecognizedActionIsNoOp(t *testing.T) {
	cart := &recordingCart{}
	nav := &recordingNav{}
	e := NewExecutor(cart, nav)

	outcome := e.Execute(context.Background(), core.DoEvent{
		Action:      "self destruct",
		ProductRefs: []core.ProductRef{{ID: "x"}},
	})

	assert.Equal(t, Outcome{}, outcome)
	assert.Zero(t, cart.callCount())
	assert.Empty(t, nav.targets)
}

func TestExecutor_ActionMatchingIsTolerant(t *testing.T) {
	cart := &recordingCart{}
	e := NewExecutor(cart, nil)

	outcome := e.Execute(context.Background(), core.DoEvent{
		Action:      "  Add To Cart ",
		ProductRefs: []core.ProductRef{{ID: "x"}},
	})
	assert.Equal(t, 1, outcome.Attempted)
}

func TestExecutor_EmptyProductListIsNoOp(t *testing.T) {
	cart := &recordingCart{}
	e := NewExecutor(cart, nil)

	outcome := e.Execute(context.Background(), core.DoEvent{Action: ActionAddToCart})
	assert.Zero(t, outcome.Attempted)
	assert.False(t, outcome.CartTouched, "no mutation issued, cart must not be reported touched")
	assert.Zero(t, cart.callCount())
}
