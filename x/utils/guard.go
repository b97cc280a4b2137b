package utils

import (
	"github.com/lockstead/timevault"
	"github.com/lockstead/timevault/errors"
)

// ErrReentrancy is returned when a transaction enters the stack while
// another transaction is still being processed.
var ErrReentrancy = errors.Register(70, "reentrant call")

// ReentrancyGuard rejects any transaction that arrives while another
// one is still executing on the same stack. Settlement hooks run in
// the middle of handler execution, so a hook that calls back into the
// processor trips the guard instead of observing partial state.
//
// Transactions are processed sequentially on a single stack, the
// guard detects callback reentry, not parallel use.
type ReentrancyGuard struct {
	busy bool
}

var _ timevault.Decorator = (*ReentrancyGuard)(nil)

// NewReentrancyGuard creates a ReentrancyGuard decorator. Use one
// instance per handler stack.
func NewReentrancyGuard() *ReentrancyGuard {
	return &ReentrancyGuard{}
}

// Check holds the latch for the duration of the call.
func (g *ReentrancyGuard) Check(ctx timevault.Context, store timevault.KVStore, tx timevault.Tx, next timevault.Checker) (*timevault.CheckResult, error) {
	if err := g.acquire(); err != nil {
		return nil, err
	}
	defer g.release()
	return next.Check(ctx, store, tx)
}

// Deliver holds the latch for the duration of the call.
func (g *ReentrancyGuard) Deliver(ctx timevault.Context, store timevault.KVStore, tx timevault.Tx, next timevault.Deliverer) (*timevault.DeliverResult, error) {
	if err := g.acquire(); err != nil {
		return nil, err
	}
	defer g.release()
	return next.Deliver(ctx, store, tx)
}

func (g *ReentrancyGuard) acquire() error {
	if g.busy {
		return errors.Wrap(ErrReentrancy, "transaction in progress")
	}
	g.busy = true
	return nil
}

func (g *ReentrancyGuard) release() {
	g.busy = false
}
