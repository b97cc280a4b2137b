package vault

import (
	"github.com/lockstead/timevault"
	"github.com/lockstead/timevault/coin"
	"github.com/lockstead/timevault/errors"
)

// Message paths, consumed by the router.
const (
	pathAdmit      = "vault/admit"
	pathDeposit    = "vault/deposit"
	pathWithdraw   = "vault/withdraw"
	pathExtendLock = "vault/extend_lock"
)

var (
	_ timevault.Msg = (*AdmitMsg)(nil)
	_ timevault.Msg = (*DepositMsg)(nil)
	_ timevault.Msg = (*WithdrawMsg)(nil)
	_ timevault.Msg = (*ExtendLockMsg)(nil)
)

// AdmitMsg registers a new identity with the vault.
type AdmitMsg struct {
	// Address is the identity to admit.
	Address timevault.Address `json:"address"`
}

func (AdmitMsg) Path() string {
	return pathAdmit
}

func (m *AdmitMsg) Validate() error {
	return errors.Wrap(m.Address.Validate(), "address")
}

func (m *AdmitMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *AdmitMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// DepositMsg moves funds from the source into custody and re-anchors
// the time lock on the whole balance.
type DepositMsg struct {
	// Source is the depositing identity.
	Source timevault.Address `json:"source"`
	// Amount to deposit, at least the configured minimum.
	Amount coin.Coin `json:"amount"`
}

func (DepositMsg) Path() string {
	return pathDeposit
}

func (m *DepositMsg) Validate() error {
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !m.Amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "deposit must be positive")
	}
	return nil
}

func (m *DepositMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *DepositMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// WithdrawMsg releases funds back to the source once the lock period
// has passed.
type WithdrawMsg struct {
	// Source is the withdrawing identity.
	Source timevault.Address `json:"source"`
	// Amount to withdraw, up to the account balance.
	Amount coin.Coin `json:"amount"`
}

func (WithdrawMsg) Path() string {
	return pathWithdraw
}

func (m *WithdrawMsg) Validate() error {
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !m.Amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "withdrawal must be positive")
	}
	return nil
}

func (m *WithdrawMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *WithdrawMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// ExtendLockMsg voluntarily pushes the lock anchor into the future.
// Extensions are cumulative and unbounded.
type ExtendLockMsg struct {
	// Source is the identity extending its own lock.
	Source timevault.Address `json:"source"`
	// AdditionalDays to add to the lock anchor.
	AdditionalDays int32 `json:"additional_days"`
}

func (ExtendLockMsg) Path() string {
	return pathExtendLock
}

func (m *ExtendLockMsg) Validate() error {
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if m.AdditionalDays <= 0 {
		return errors.Wrap(errors.ErrInput, "extension must be positive")
	}
	return nil
}

func (m *ExtendLockMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *ExtendLockMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}
