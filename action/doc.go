// Package action executes the side effects carried by do-events: cart
// mutations fanned out as independent concurrent remote calls, and navigation
// hand-offs. The fan-out is best-effort by design; individual failures are
// logged and counted in the aggregate outcome but never cancel or roll back
// sibling calls. Unrecognized actions are logged no-ops.
package action
