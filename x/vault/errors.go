package vault

import (
	"github.com/lockstead/timevault/errors"
	"github.com/lockstead/timevault/x/utils"
)

var (
	// ErrNotAdmitted is returned when an identity that never passed
	// admission tries to use the vault.
	ErrNotAdmitted = errors.Register(100, "identity not admitted")

	// ErrAlreadyAdmitted is returned on repeated admission.
	ErrAlreadyAdmitted = errors.Register(101, "identity already admitted")

	// ErrCapacity is returned when the admission cap is exhausted.
	ErrCapacity = errors.Register(102, "admission capacity exhausted")

	// ErrAmountTooSmall is returned for deposits below the configured
	// minimum.
	ErrAmountTooSmall = errors.Register(103, "amount below minimum deposit")

	// ErrInsufficientBalance is returned when a withdrawal exceeds the
	// account balance.
	ErrInsufficientBalance = errors.Register(104, "insufficient balance")

	// ErrFundsLocked is returned when the account's time lock has not
	// expired yet.
	ErrFundsLocked = errors.Register(105, "funds are time locked")

	// ErrTransferFailed is returned when the paymaster rejects the
	// settlement handoff. The whole call is rolled back.
	ErrTransferFailed = errors.Register(106, "transfer failed")

	// ErrNoBalance is returned when extending a lock on an empty
	// account.
	ErrNoBalance = errors.Register(107, "no balance to lock")

	// ErrTicker is returned when an amount is denominated in a
	// currency the vault does not hold.
	ErrTicker = errors.Register(108, "unsupported currency")
)

// ErrReentrantCall is the condition surfaced when a transaction
// arrives while the settlement latch is held. The latch itself is the
// ReentrancyGuard decorator.
var ErrReentrantCall = utils.ErrReentrancy
