package vault

import (
	"testing"
	"time"

	"github.com/lockstead/timevault"
	"github.com/lockstead/timevault/coin"
	"github.com/lockstead/timevault/errors"
	"github.com/lockstead/timevault/store"
	"github.com/lockstead/timevault/tvtest"
	"github.com/lockstead/timevault/tvtest/assert"
)

func tvlt(whole int64) coin.Coin {
	return coin.NewCoin(whole, 0, "TVLT")
}

var t0 = timevault.AsUnixTime(time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC))

func day(n int64) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

func TestControllerAdmit(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	conf := DefaultConfiguration()
	conf.Capacity = 2

	alice, bob, carl := tvtest.SeqAddr(1), tvtest.SeqAddr(2), tvtest.SeqAddr(3)

	acct, err := ctrl.Admit(db, alice, conf)
	assert.Nil(t, err)
	assert.Equal(t, true, acct.Admitted)
	assert.Equal(t, true, acct.Balance.IsZero())

	// repeated admission is rejected
	_, err = ctrl.Admit(db, alice, conf)
	assert.IsErr(t, ErrAlreadyAdmitted, err)

	_, err = ctrl.Admit(db, bob, conf)
	assert.Nil(t, err)

	// the third seat does not exist
	_, err = ctrl.Admit(db, carl, conf)
	assert.IsErr(t, ErrCapacity, err)

	tally, err := ctrl.Tally(db, conf)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), tally.AdmittedCount)
	assert.Nil(t, ctrl.CheckInvariants(db, conf))
}

func TestControllerDeposit(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	conf := DefaultConfiguration()
	alice := tvtest.SeqAddr(1)
	stranger := tvtest.SeqAddr(9)

	_, err := ctrl.Admit(db, alice, conf)
	assert.Nil(t, err)

	// strangers cannot deposit
	_, err = ctrl.Deposit(db, stranger, tvlt(5), conf, t0)
	assert.IsErr(t, ErrNotAdmitted, err)

	// wrong currency is rejected before amount checks
	_, err = ctrl.Deposit(db, alice, coin.NewCoin(5, 0, "USDX"), conf, t0)
	assert.IsErr(t, ErrTicker, err)

	// below the one-coin minimum
	_, err = ctrl.Deposit(db, alice, coin.NewCoin(0, 5, "TVLT"), conf, t0)
	assert.IsErr(t, ErrAmountTooSmall, err)

	acct, err := ctrl.Deposit(db, alice, tvlt(5), conf, t0)
	assert.Nil(t, err)
	assert.Equal(t, tvlt(5), acct.Balance)
	assert.Equal(t, t0, acct.LockAnchor)

	// a later deposit re-anchors the lock on the whole balance
	t1 := t0.Add(day(3))
	acct, err = ctrl.Deposit(db, alice, tvlt(2), conf, t1)
	assert.Nil(t, err)
	assert.Equal(t, tvlt(7), acct.Balance)
	assert.Equal(t, t1, acct.LockAnchor)

	tally, err := ctrl.Tally(db, conf)
	assert.Nil(t, err)
	assert.Equal(t, tvlt(7), tally.TotalHeld)
	assert.Nil(t, ctrl.CheckInvariants(db, conf))
}

func TestControllerDepositNeverRewindsAnchor(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	conf := DefaultConfiguration()
	alice := tvtest.SeqAddr(1)

	_, err := ctrl.Admit(db, alice, conf)
	assert.Nil(t, err)
	_, err = ctrl.Deposit(db, alice, tvlt(5), conf, t0)
	assert.Nil(t, err)

	// push the anchor 30 days ahead of the clock
	acct, err := ctrl.ExtendLock(db, alice, 30)
	assert.Nil(t, err)
	extended := acct.LockAnchor

	// a deposit one day later keeps the extended anchor
	acct, err = ctrl.Deposit(db, alice, tvlt(1), conf, t0.Add(day(1)))
	assert.Nil(t, err)
	assert.Equal(t, extended, acct.LockAnchor)
	assert.Nil(t, ctrl.CheckInvariants(db, conf))
}

func TestControllerWithdraw(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	conf := DefaultConfiguration()
	alice := tvtest.SeqAddr(1)
	stranger := tvtest.SeqAddr(9)

	_, err := ctrl.Admit(db, alice, conf)
	assert.Nil(t, err)
	_, err = ctrl.Deposit(db, alice, tvlt(10), conf, t0)
	assert.Nil(t, err)

	_, err = ctrl.Withdraw(db, stranger, tvlt(1), conf, t0)
	assert.IsErr(t, ErrNotAdmitted, err)

	_, err = ctrl.Withdraw(db, alice, coin.NewCoin(1, 0, "USDX"), conf, t0)
	assert.IsErr(t, ErrTicker, err)

	// balance is checked before the lock
	_, err = ctrl.Withdraw(db, alice, tvlt(11), conf, t0)
	assert.IsErr(t, ErrInsufficientBalance, err)

	// still locked right after the deposit
	_, err = ctrl.Withdraw(db, alice, tvlt(1), conf, t0)
	assert.IsErr(t, ErrFundsLocked, err)

	// and one second before expiry
	_, err = ctrl.Withdraw(db, alice, tvlt(1), conf, t0.Add(day(7)-time.Second))
	assert.IsErr(t, ErrFundsLocked, err)

	// free at exactly seven days
	t7 := t0.Add(day(7))
	acct, err := ctrl.Withdraw(db, alice, tvlt(4), conf, t7)
	assert.Nil(t, err)
	assert.Equal(t, tvlt(6), acct.Balance)

	// a full withdrawal keeps the admission with a zero balance
	acct, err = ctrl.Withdraw(db, alice, tvlt(6), conf, t7)
	assert.Nil(t, err)
	assert.Equal(t, true, acct.Balance.IsZero())
	assert.Equal(t, true, acct.Admitted)

	tally, err := ctrl.Tally(db, conf)
	assert.Nil(t, err)
	assert.Equal(t, true, tally.TotalHeld.IsZero())
	assert.Equal(t, int64(1), tally.AdmittedCount)
	assert.Nil(t, ctrl.CheckInvariants(db, conf))
}

func TestControllerExtendLock(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	conf := DefaultConfiguration()
	alice := tvtest.SeqAddr(1)

	_, err := ctrl.Admit(db, alice, conf)
	assert.Nil(t, err)

	// nothing to lock on an empty account
	_, err = ctrl.ExtendLock(db, alice, 5)
	assert.IsErr(t, ErrNoBalance, err)

	_, err = ctrl.Deposit(db, alice, tvlt(3), conf, t0)
	assert.Nil(t, err)

	// extensions are cumulative
	acct, err := ctrl.ExtendLock(db, alice, 5)
	assert.Nil(t, err)
	assert.Equal(t, t0.Add(day(5)), acct.LockAnchor)

	acct, err = ctrl.ExtendLock(db, alice, 2)
	assert.Nil(t, err)
	assert.Equal(t, t0.Add(day(7)), acct.LockAnchor)

	// the lock period applies on top of the extended anchor
	_, err = ctrl.Withdraw(db, alice, tvlt(1), conf, t0.Add(day(13)))
	assert.IsErr(t, ErrFundsLocked, err)
	_, err = ctrl.Withdraw(db, alice, tvlt(1), conf, t0.Add(day(14)))
	assert.Nil(t, err)
	assert.Nil(t, ctrl.CheckInvariants(db, conf))
}

func TestControllerCheckInvariantsDetectsDrift(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	conf := DefaultConfiguration()
	alice := tvtest.SeqAddr(1)

	_, err := ctrl.Admit(db, alice, conf)
	assert.Nil(t, err)
	_, err = ctrl.Deposit(db, alice, tvlt(5), conf, t0)
	assert.Nil(t, err)
	assert.Nil(t, ctrl.CheckInvariants(db, conf))

	// corrupt the tally behind the controller's back
	tally, err := ctrl.Tally(db, conf)
	assert.Nil(t, err)
	tally.TotalHeld = tvlt(4)
	assert.Nil(t, ctrl.tally.Save(db, tally))

	assert.IsErr(t, errors.ErrState, ctrl.CheckInvariants(db, conf))
}
