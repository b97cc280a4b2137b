package vault

import (
	"fmt"

	"github.com/lockstead/timevault"
	"github.com/lockstead/timevault/errors"
)

const (
	admitCost    int64 = 100
	depositCost  int64 = 100
	withdrawCost int64 = 150
	extendCost   int64 = 50
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r timevault.Registry, ctrl Controller, pm Paymaster) {
	r.Handle(&AdmitMsg{}, AdmitHandler{ctrl: ctrl})
	r.Handle(&DepositMsg{}, DepositHandler{ctrl: ctrl})
	r.Handle(&WithdrawMsg{}, WithdrawHandler{ctrl: ctrl, pm: pm})
	r.Handle(&ExtendLockMsg{}, ExtendLockHandler{ctrl: ctrl})
}

// AdmitHandler registers identities until capacity is reached.
type AdmitHandler struct {
	ctrl Controller
}

var _ timevault.Handler = AdmitHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h AdmitHandler) Check(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.CheckResult, error) {
	if _, err := h.validate(tx); err != nil {
		return nil, err
	}
	return &timevault.CheckResult{GasAllocated: admitCost}, nil
}

// Deliver admits the identity if a seat is free.
func (h AdmitHandler) Deliver(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.DeliverResult, error) {
	msg, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.Admit(db, msg.Address, conf); err != nil {
		return nil, err
	}
	res := &timevault.DeliverResult{
		Tags: []timevault.KVPair{
			timevault.Pair("vault.admitted", msg.Address.String()),
		},
	}
	return res, nil
}

func (h AdmitHandler) validate(tx timevault.Tx) (*AdmitMsg, error) {
	var msg AdmitMsg
	if err := timevault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}

// DepositHandler accepts funds into custody and re-anchors the lock.
type DepositHandler struct {
	ctrl Controller
}

var _ timevault.Handler = DepositHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h DepositHandler) Check(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.CheckResult, error) {
	if _, err := h.validate(tx); err != nil {
		return nil, err
	}
	return &timevault.CheckResult{GasAllocated: depositCost}, nil
}

// Deliver credits the account and re-locks the whole balance.
func (h DepositHandler) Deliver(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.DeliverResult, error) {
	msg, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}
	acct, err := h.ctrl.Deposit(db, msg.Source, msg.Amount, conf, now)
	if err != nil {
		return nil, err
	}
	res := &timevault.DeliverResult{
		Log: fmt.Sprintf("balance %s locked until %s", acct.Balance, unlockTime(acct, conf.LockPeriod)),
		Tags: []timevault.KVPair{
			timevault.Pair("vault.deposited", fmt.Sprintf("%s %s", msg.Source, msg.Amount)),
		},
	}
	return res, nil
}

func (h DepositHandler) validate(tx timevault.Tx) (*DepositMsg, error) {
	var msg DepositMsg
	if err := timevault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}

// WithdrawHandler releases unlocked funds. The order of operations
// is fixed: all checks, then the balance and tally updates, and only
// then the external settlement handoff. A failed handoff surfaces as
// ErrTransferFailed, which makes the surrounding savepoint discard
// every effect of this delivery.
type WithdrawHandler struct {
	ctrl Controller
	pm   Paymaster
}

var _ timevault.Handler = WithdrawHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h WithdrawHandler) Check(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.CheckResult, error) {
	if _, err := h.validate(tx); err != nil {
		return nil, err
	}
	return &timevault.CheckResult{GasAllocated: withdrawCost}, nil
}

// Deliver debits the books and hands the funds to the paymaster.
func (h WithdrawHandler) Deliver(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.DeliverResult, error) {
	msg, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}

	// checks and effects
	acct, err := h.ctrl.Withdraw(db, msg.Source, msg.Amount, conf, now)
	if err != nil {
		return nil, err
	}

	// interaction comes last, with the books already settled
	if err := h.pm.Pay(ctx, msg.Source, msg.Amount); err != nil {
		return nil, errors.Wrapf(ErrTransferFailed, "paymaster: %s", err)
	}

	res := &timevault.DeliverResult{
		Log: fmt.Sprintf("balance %s", acct.Balance),
		Tags: []timevault.KVPair{
			timevault.Pair("vault.withdrawn", fmt.Sprintf("%s %s", msg.Source, msg.Amount)),
		},
	}
	return res, nil
}

func (h WithdrawHandler) validate(tx timevault.Tx) (*WithdrawMsg, error) {
	var msg WithdrawMsg
	if err := timevault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}

// ExtendLockHandler lets an account voluntarily push its lock anchor
// into the future.
type ExtendLockHandler struct {
	ctrl Controller
}

var _ timevault.Handler = ExtendLockHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h ExtendLockHandler) Check(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.CheckResult, error) {
	if _, err := h.validate(tx); err != nil {
		return nil, err
	}
	return &timevault.CheckResult{GasAllocated: extendCost}, nil
}

// Deliver moves the anchor forward. Extensions stack and there is no
// upper bound on how far an account can lock itself out.
func (h ExtendLockHandler) Deliver(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.DeliverResult, error) {
	msg, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	acct, err := h.ctrl.ExtendLock(db, msg.Source, msg.AdditionalDays)
	if err != nil {
		return nil, err
	}
	res := &timevault.DeliverResult{
		Log: fmt.Sprintf("lock anchored at %s", acct.LockAnchor),
		Tags: []timevault.KVPair{
			timevault.Pair("vault.lock_extended", fmt.Sprintf("%s %d", msg.Source, msg.AdditionalDays)),
		},
	}
	return res, nil
}

func (h ExtendLockHandler) validate(tx timevault.Tx) (*ExtendLockMsg, error) {
	var msg ExtendLockMsg
	if err := timevault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}

// blockNow reads the block time from the context as UnixTime.
func blockNow(ctx timevault.Context) (timevault.UnixTime, error) {
	t, err := timevault.BlockTime(ctx)
	if err != nil {
		return 0, err
	}
	return timevault.AsUnixTime(t), nil
}
