package vault

import (
	"github.com/lockstead/timevault"
	"github.com/lockstead/timevault/coin"
	"github.com/lockstead/timevault/errors"
	"github.com/lockstead/timevault/orm"
)

// Controller is the functional, stateless core of the vault. All
// methods mutate only the passed store, so a savepoint around the
// call gives all-or-nothing semantics.
type Controller struct {
	accounts AccountBucket
	tally    TallyBucket
}

// NewController initializes a Controller with fresh bucket handles.
func NewController() Controller {
	return Controller{
		accounts: NewAccountBucket(),
		tally:    NewTallyBucket(),
	}
}

// Account loads the record for the given address, nil if never
// admitted.
func (c Controller) Account(db timevault.KVStore, addr timevault.Address) (*Account, error) {
	return c.accounts.GetAccount(db, addr)
}

// Tally loads the running aggregates.
func (c Controller) Tally(db timevault.KVStore, conf Configuration) (*Tally, error) {
	return c.tally.GetTally(db, conf.Ticker)
}

// Admit registers a new identity. It fails on repeated admission and
// once the configured capacity is reached.
func (c Controller) Admit(db timevault.KVStore, addr timevault.Address, conf Configuration) (*Account, error) {
	existing, err := c.accounts.GetAccount(db, addr)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Wrapf(ErrAlreadyAdmitted, "address %s", addr)
	}

	tally, err := c.tally.GetTally(db, conf.Ticker)
	if err != nil {
		return nil, err
	}
	if tally.AdmittedCount >= conf.Capacity {
		return nil, errors.Wrapf(ErrCapacity, "capacity %d reached", conf.Capacity)
	}

	acct := &Account{
		Admitted: true,
		Balance:  coin.NewCoin(0, 0, conf.Ticker),
	}
	if err := c.accounts.Save(db, addr, acct); err != nil {
		return nil, err
	}
	tally.AdmittedCount++
	if err := c.tally.Save(db, tally); err != nil {
		return nil, err
	}
	return acct, nil
}

// Deposit adds the amount to the account balance and re-anchors the
// time lock on the whole balance at the given time.
func (c Controller) Deposit(db timevault.KVStore, addr timevault.Address, amount coin.Coin, conf Configuration, now timevault.UnixTime) (*Account, error) {
	acct, err := c.admitted(db, addr)
	if err != nil {
		return nil, err
	}
	if amount.Ticker != conf.Ticker {
		return nil, errors.Wrapf(ErrTicker, "vault holds %s, not %s", conf.Ticker, amount.Ticker)
	}
	if !amount.IsGTE(conf.MinDeposit) {
		return nil, errors.Wrapf(ErrAmountTooSmall, "minimum deposit is %s", conf.MinDeposit)
	}

	balance, err := acct.Balance.Add(amount)
	if err != nil {
		return nil, errors.Wrap(err, "balance")
	}
	acct.Balance = balance
	// The anchor moves to now, re-locking the whole balance. It must
	// never rewind below a voluntarily extended anchor.
	if now > acct.LockAnchor {
		acct.LockAnchor = now
	}
	if err := c.accounts.Save(db, addr, acct); err != nil {
		return nil, err
	}

	tally, err := c.tally.GetTally(db, conf.Ticker)
	if err != nil {
		return nil, err
	}
	total, err := tally.TotalHeld.Add(amount)
	if err != nil {
		return nil, errors.Wrap(err, "total held")
	}
	tally.TotalHeld = total
	if err := c.tally.Save(db, tally); err != nil {
		return nil, err
	}
	return acct, nil
}

// Withdraw removes the amount from the account balance. The caller
// is responsible for the settlement handoff, the books are updated
// before any external party is involved.
func (c Controller) Withdraw(db timevault.KVStore, addr timevault.Address, amount coin.Coin, conf Configuration, now timevault.UnixTime) (*Account, error) {
	acct, err := c.admitted(db, addr)
	if err != nil {
		return nil, err
	}
	if amount.Ticker != conf.Ticker {
		return nil, errors.Wrapf(ErrTicker, "vault holds %s, not %s", conf.Ticker, amount.Ticker)
	}
	if !acct.Balance.IsGTE(amount) {
		return nil, errors.Wrapf(ErrInsufficientBalance, "balance %s", acct.Balance)
	}
	if !isUnlocked(acct, conf.LockPeriod, now) {
		days := remainingLockDays(acct, conf.LockPeriod, now)
		return nil, errors.Wrapf(ErrFundsLocked, "%d more full days", days)
	}

	balance, err := acct.Balance.Subtract(amount)
	if err != nil {
		return nil, errors.Wrap(err, "balance")
	}
	acct.Balance = balance
	if err := c.accounts.Save(db, addr, acct); err != nil {
		return nil, err
	}

	tally, err := c.tally.GetTally(db, conf.Ticker)
	if err != nil {
		return nil, err
	}
	total, err := tally.TotalHeld.Subtract(amount)
	if err != nil {
		return nil, errors.Wrap(err, "total held")
	}
	tally.TotalHeld = total
	if err := c.tally.Save(db, tally); err != nil {
		return nil, err
	}
	return acct, nil
}

// ExtendLock pushes the lock anchor the given number of days into
// the future. Extensions stack without an upper bound.
func (c Controller) ExtendLock(db timevault.KVStore, addr timevault.Address, days int32) (*Account, error) {
	acct, err := c.admitted(db, addr)
	if err != nil {
		return nil, err
	}
	if acct.Balance.IsZero() {
		return nil, errors.Wrapf(ErrNoBalance, "address %s", addr)
	}

	acct.LockAnchor += timevault.UnixTime(int64(days) * secondsPerDay)
	if err := c.accounts.Save(db, addr, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

// admitted loads the account and rejects unknown identities.
func (c Controller) admitted(db timevault.KVStore, addr timevault.Address) (*Account, error) {
	acct, err := c.accounts.GetAccount(db, addr)
	if err != nil {
		return nil, err
	}
	if acct == nil || !acct.Admitted {
		return nil, errors.Wrapf(ErrNotAdmitted, "address %s", addr)
	}
	return acct, nil
}

// CheckInvariants does a full scan over all accounts and verifies
// the books: conservation of value, admitted count and cap,
// non-negative balances, no balance without admission.
func (c Controller) CheckInvariants(db timevault.KVStore, conf Configuration) error {
	total := coin.NewCoin(0, 0, conf.Ticker)
	var admitted int64

	err := c.accounts.Iterate(db, func(obj orm.Object) error {
		acct, err := AsAccount(obj)
		if err != nil {
			return err
		}
		if !acct.Balance.IsNonNegative() {
			return errors.Wrapf(errors.ErrState, "negative balance on %x", obj.Key())
		}
		if !acct.Admitted && !acct.Balance.IsZero() {
			return errors.Wrapf(errors.ErrState, "balance without admission on %x", obj.Key())
		}
		if acct.Admitted {
			admitted++
		}
		total, err = total.Add(acct.Balance)
		return err
	})
	if err != nil {
		return err
	}

	tally, err := c.tally.GetTally(db, conf.Ticker)
	if err != nil {
		return err
	}
	if !tally.TotalHeld.Equals(total) {
		return errors.Wrapf(errors.ErrState, "total held %s, account sum %s", tally.TotalHeld, total)
	}
	if tally.AdmittedCount != admitted {
		return errors.Wrapf(errors.ErrState, "admitted count %d, accounts %d", tally.AdmittedCount, admitted)
	}
	if admitted > conf.Capacity {
		return errors.Wrapf(errors.ErrState, "admitted %d over capacity %d", admitted, conf.Capacity)
	}
	return nil
}
