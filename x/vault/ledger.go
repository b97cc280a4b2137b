package vault

import (
	"context"
	"time"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/lockstead/timevault"
	"github.com/lockstead/timevault/app"
	"github.com/lockstead/timevault/coin"
	"github.com/lockstead/timevault/errors"
	"github.com/lockstead/timevault/store"
	"github.com/lockstead/timevault/x/utils"
)

// Ledger is a ready-to-use vault: store, genesis state, router and
// decorator chain wired together. Every operation runs through the
// same stack, so panic recovery, the reentrancy latch and savepoint
// rollback apply uniformly.
type Ledger struct {
	db     timevault.CacheableKVStore
	stack  timevault.Handler
	ctrl   Controller
	logger log.Logger
	height int64
	now    time.Time
}

// NewLedger builds a ledger from genesis options, settling
// withdrawals through the given paymaster.
func NewLedger(opts timevault.Options, pm Paymaster) (*Ledger, error) {
	db := store.MemStore()
	if err := (Initializer{}).FromGenesis(opts, db); err != nil {
		return nil, errors.Wrap(err, "genesis")
	}

	ctrl := NewController()
	router := app.NewRouter()
	RegisterRoutes(router, ctrl, pm)

	// The guard sits outside the savepoint: a rollback triggered by a
	// hostile paymaster happens while the latch is still held.
	stack := app.ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(),
		utils.NewReentrancyGuard(),
		utils.NewSavepoint().OnCheck().OnDeliver(),
		utils.NewActionTagger(),
	).WithHandler(router)

	return &Ledger{
		db:     db,
		stack:  stack,
		ctrl:   ctrl,
		logger: timevault.DefaultLogger,
	}, nil
}

// WithLogger replaces the logger used by the logging decorator.
func (l *Ledger) WithLogger(logger log.Logger) *Ledger {
	l.logger = logger
	return l
}

// AdvanceTo sets the block time used by subsequent operations. The
// caller contract is a monotonic clock. Without an explicit time the
// wall clock is used.
func (l *Ledger) AdvanceTo(t time.Time) {
	l.now = t
}

// Admit registers a new identity with the vault.
func (l *Ledger) Admit(addr timevault.Address) (*timevault.DeliverResult, error) {
	return l.deliver(&AdmitMsg{Address: addr})
}

// Deposit places funds into custody, re-locking the whole balance.
func (l *Ledger) Deposit(addr timevault.Address, amount coin.Coin) (*timevault.DeliverResult, error) {
	return l.deliver(&DepositMsg{Source: addr, Amount: amount})
}

// Withdraw releases unlocked funds through the paymaster.
func (l *Ledger) Withdraw(addr timevault.Address, amount coin.Coin) (*timevault.DeliverResult, error) {
	return l.deliver(&WithdrawMsg{Source: addr, Amount: amount})
}

// ExtendLock pushes the account's lock anchor into the future.
func (l *Ledger) ExtendLock(addr timevault.Address, days int32) (*timevault.DeliverResult, error) {
	return l.deliver(&ExtendLockMsg{Source: addr, AdditionalDays: days})
}

// QueryInfo returns the balance and the number of full days left on
// the lock. It never fails: unknown identities report a zero balance
// and no lock.
func (l *Ledger) QueryInfo(addr timevault.Address) (coin.Coin, int64) {
	conf, err := loadConf(l.db)
	if err != nil {
		return coin.Coin{}, 0
	}
	acct, err := l.ctrl.Account(l.db, addr)
	if err != nil || acct == nil {
		return coin.NewCoin(0, 0, conf.Ticker), 0
	}
	days := remainingLockDays(acct, conf.LockPeriod, timevault.AsUnixTime(l.blockTime()))
	return acct.Balance, days
}

// CheckInvariants reconciles the books with a full account scan.
func (l *Ledger) CheckInvariants() error {
	conf, err := loadConf(l.db)
	if err != nil {
		return err
	}
	return l.ctrl.CheckInvariants(l.db, conf)
}

func (l *Ledger) deliver(msg timevault.Msg) (*timevault.DeliverResult, error) {
	l.height++
	ctx := timevault.WithHeight(context.Background(), l.height)
	ctx = timevault.WithLogger(ctx, l.logger)
	ctx = timevault.WithBlockTime(ctx, l.blockTime())
	return l.stack.Deliver(ctx, l.db, &Tx{Msg: msg})
}

func (l *Ledger) blockTime() time.Time {
	if l.now.IsZero() {
		return time.Now()
	}
	return l.now
}
