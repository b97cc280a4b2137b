package vault

import (
	"context"
	"testing"
	"time"

	"github.com/lockstead/timevault"
	"github.com/lockstead/timevault/coin"
	"github.com/lockstead/timevault/store"
	"github.com/lockstead/timevault/tvtest"
	"github.com/lockstead/timevault/tvtest/assert"
)

// payRecorder is a paymaster that records every handoff and fails on
// demand.
type payRecorder struct {
	calls []payCall
	err   error
}

type payCall struct {
	recipient timevault.Address
	amount    coin.Coin
}

func (p *payRecorder) Pay(ctx timevault.Context, recipient timevault.Address, amount coin.Coin) error {
	p.calls = append(p.calls, payCall{recipient: recipient, amount: amount})
	return p.err
}

func ctxAt(at timevault.UnixTime) timevault.Context {
	return timevault.WithBlockTime(context.Background(), at.Time())
}

func setupVault(t testing.TB) (timevault.CacheableKVStore, Controller) {
	t.Helper()
	db := store.MemStore()
	ctrl := NewController()
	if err := saveConf(db, DefaultConfiguration()); err != nil {
		t.Fatalf("save configuration: %+v", err)
	}
	return db, ctrl
}

func TestAdmitHandler(t *testing.T) {
	db, ctrl := setupVault(t)
	h := AdmitHandler{ctrl: ctrl}
	alice := tvtest.SeqAddr(1)
	tx := &Tx{Msg: &AdmitMsg{Address: alice}}

	cres, err := h.Check(ctxAt(t0), db, tx)
	assert.Nil(t, err)
	assert.Equal(t, admitCost, cres.GasAllocated)

	dres, err := h.Deliver(ctxAt(t0), db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(dres.Tags))
	assert.Equal(t, "vault.admitted", string(dres.Tags[0].Key))

	// check still passes, deliver refuses the duplicate
	_, err = h.Check(ctxAt(t0), db, tx)
	assert.Nil(t, err)
	_, err = h.Deliver(ctxAt(t0), db, tx)
	assert.IsErr(t, ErrAlreadyAdmitted, err)

	// malformed addresses never reach the controller
	bad := &Tx{Msg: &AdmitMsg{Address: []byte{1, 2, 3}}}
	_, err = h.Check(ctxAt(t0), db, bad)
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestDepositHandler(t *testing.T) {
	db, ctrl := setupVault(t)
	alice := tvtest.SeqAddr(1)
	_, err := ctrl.Admit(db, alice, DefaultConfiguration())
	assert.Nil(t, err)

	h := DepositHandler{ctrl: ctrl}
	tx := &Tx{Msg: &DepositMsg{Source: alice, Amount: tvlt(5)}}

	cres, err := h.Check(ctxAt(t0), db, tx)
	assert.Nil(t, err)
	assert.Equal(t, depositCost, cres.GasAllocated)

	dres, err := h.Deliver(ctxAt(t0), db, tx)
	assert.Nil(t, err)
	assert.Equal(t, "vault.deposited", string(dres.Tags[0].Key))

	acct, err := ctrl.Account(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, tvlt(5), acct.Balance)
	assert.Equal(t, t0, acct.LockAnchor)

	// the handler needs a block time to anchor the lock
	_, err = h.Deliver(context.Background(), db, tx)
	if err == nil {
		t.Fatal("expected missing block time error")
	}
}

func TestWithdrawHandler(t *testing.T) {
	db, ctrl := setupVault(t)
	alice := tvtest.SeqAddr(1)
	conf := DefaultConfiguration()
	_, err := ctrl.Admit(db, alice, conf)
	assert.Nil(t, err)
	_, err = ctrl.Deposit(db, alice, tvlt(10), conf, t0)
	assert.Nil(t, err)

	pm := &payRecorder{}
	h := WithdrawHandler{ctrl: ctrl, pm: pm}
	tx := &Tx{Msg: &WithdrawMsg{Source: alice, Amount: tvlt(4)}}

	// locked funds never reach the paymaster
	_, err = h.Deliver(ctxAt(t0), db, tx)
	assert.IsErr(t, ErrFundsLocked, err)
	assert.Equal(t, 0, len(pm.calls))

	t7 := t0.Add(7 * 24 * time.Hour)
	dres, err := h.Deliver(ctxAt(t7), db, tx)
	assert.Nil(t, err)
	assert.Equal(t, "vault.withdrawn", string(dres.Tags[0].Key))
	assert.Equal(t, 1, len(pm.calls))
	assert.Equal(t, true, alice.Equals(pm.calls[0].recipient))
	assert.Equal(t, tvlt(4), pm.calls[0].amount)

	acct, err := ctrl.Account(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, tvlt(6), acct.Balance)

	// a failing handoff surfaces as ErrTransferFailed. The books were
	// already debited here, the surrounding savepoint discards that.
	pm.err = context.DeadlineExceeded
	_, err = h.Deliver(ctxAt(t7), db, tx)
	assert.IsErr(t, ErrTransferFailed, err)
}

func TestExtendLockHandler(t *testing.T) {
	db, ctrl := setupVault(t)
	alice := tvtest.SeqAddr(1)
	conf := DefaultConfiguration()
	_, err := ctrl.Admit(db, alice, conf)
	assert.Nil(t, err)
	_, err = ctrl.Deposit(db, alice, tvlt(3), conf, t0)
	assert.Nil(t, err)

	h := ExtendLockHandler{ctrl: ctrl}
	tx := &Tx{Msg: &ExtendLockMsg{Source: alice, AdditionalDays: 5}}

	cres, err := h.Check(ctxAt(t0), db, tx)
	assert.Nil(t, err)
	assert.Equal(t, extendCost, cres.GasAllocated)

	dres, err := h.Deliver(ctxAt(t0), db, tx)
	assert.Nil(t, err)
	assert.Equal(t, "vault.lock_extended", string(dres.Tags[0].Key))

	acct, err := ctrl.Account(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, t0.Add(5*24*time.Hour), acct.LockAnchor)

	// zero or negative extensions are rejected at validation
	bad := &Tx{Msg: &ExtendLockMsg{Source: alice, AdditionalDays: 0}}
	_, err = h.Check(ctxAt(t0), db, bad)
	if err == nil {
		t.Fatal("expected validation error")
	}
}
