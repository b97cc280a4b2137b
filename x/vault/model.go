package vault

import (
	"github.com/lockstead/timevault"
	"github.com/lockstead/timevault/coin"
	"github.com/lockstead/timevault/errors"
	"github.com/lockstead/timevault/orm"
)

// Account is the per-identity record. It is created at admission and
// never deleted, a fully withdrawn account keeps its admission with a
// zero balance.
type Account struct {
	// Admitted is set once by the admission handler.
	Admitted bool `json:"admitted"`
	// Balance is the custodial balance, never negative.
	Balance coin.Coin `json:"balance"`
	// LockAnchor is the unix time the current lock period started.
	// It never decreases once set.
	LockAnchor timevault.UnixTime `json:"lock_anchor"`
}

var _ orm.CloneableData = (*Account)(nil)

func (a *Account) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(a)
}

func (a *Account) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, a)
}

// Validate ensures the account is consistent.
func (a *Account) Validate() error {
	if err := a.Balance.Validate(); err != nil {
		return errors.Wrap(err, "balance")
	}
	if !a.Balance.IsNonNegative() {
		return errors.Wrap(errors.ErrModel, "negative balance")
	}
	if !a.Admitted && !a.Balance.IsZero() {
		return errors.Wrap(errors.ErrModel, "balance without admission")
	}
	if err := a.LockAnchor.Validate(); err != nil {
		return errors.Wrap(err, "lock anchor")
	}
	return nil
}

// Copy produces an independent copy of the account.
func (a *Account) Copy() orm.CloneableData {
	return &Account{
		Admitted:   a.Admitted,
		Balance:    *a.Balance.Clone(),
		LockAnchor: a.LockAnchor,
	}
}

// AsAccount safely extracts the Account from a bucket object.
func AsAccount(obj orm.Object) (*Account, error) {
	if obj == nil || obj.Value() == nil {
		return nil, nil
	}
	acct, ok := obj.Value().(*Account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return acct, nil
}

const accountBucketName = "acct"

// AccountBucket stores accounts keyed by address.
type AccountBucket struct {
	orm.Bucket
}

// NewAccountBucket initializes an AccountBucket.
func NewAccountBucket() AccountBucket {
	return AccountBucket{
		Bucket: orm.NewBucket(accountBucketName, orm.NewSimpleObj(nil, new(Account))),
	}
}

// GetAccount loads the account for the given address, or nil if the
// identity was never admitted.
func (b AccountBucket) GetAccount(db timevault.KVStore, addr timevault.Address) (*Account, error) {
	obj, err := b.Get(db, addr)
	if err != nil {
		return nil, err
	}
	return AsAccount(obj)
}

// Save persists an account under its address.
func (b AccountBucket) Save(db timevault.KVStore, addr timevault.Address, acct *Account) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(addr, acct))
}

// Tally is the single running aggregate over all accounts. It is
// maintained incrementally and reconciled by CheckInvariants.
type Tally struct {
	// TotalHeld equals the sum of all account balances.
	TotalHeld coin.Coin `json:"total_held"`
	// AdmittedCount equals the number of admitted identities.
	AdmittedCount int64 `json:"admitted_count"`
}

var _ orm.CloneableData = (*Tally)(nil)

func (t *Tally) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(t)
}

func (t *Tally) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, t)
}

func (t *Tally) Validate() error {
	if err := t.TotalHeld.Validate(); err != nil {
		return errors.Wrap(err, "total held")
	}
	if !t.TotalHeld.IsNonNegative() {
		return errors.Wrap(errors.ErrModel, "negative total")
	}
	if t.AdmittedCount < 0 {
		return errors.Wrap(errors.ErrModel, "negative admitted count")
	}
	return nil
}

func (t *Tally) Copy() orm.CloneableData {
	return &Tally{
		TotalHeld:     *t.TotalHeld.Clone(),
		AdmittedCount: t.AdmittedCount,
	}
}

const metaBucketName = "meta"

var tallyKey = []byte("tally")

// TallyBucket stores the single Tally record.
type TallyBucket struct {
	orm.Bucket
}

// NewTallyBucket initializes a TallyBucket.
func NewTallyBucket() TallyBucket {
	return TallyBucket{
		Bucket: orm.NewBucket(metaBucketName, orm.NewSimpleObj(nil, new(Tally))),
	}
}

// GetTally loads the aggregate record, initializing a zero tally in
// the given currency if none was stored yet.
func (b TallyBucket) GetTally(db timevault.KVStore, ticker string) (*Tally, error) {
	obj, err := b.Get(db, tallyKey)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return &Tally{TotalHeld: coin.NewCoin(0, 0, ticker)}, nil
	}
	t, ok := obj.Value().(*Tally)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return t, nil
}

// Save persists the aggregate record.
func (b TallyBucket) Save(db timevault.KVStore, t *Tally) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(tallyKey, t))
}
