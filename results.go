package timevault

import (
	"github.com/tendermint/tendermint/libs/common"
)

// KVPair is a notification tag attached to a DeliverResult.
type KVPair = common.KVPair

// CheckResult captures any non-error response from validating
// a transaction before execution.
type CheckResult struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human readable data, reported on success
	Log string
	// GasAllocated is the maximum units of work we allow this tx to perform
	GasAllocated int64
}

// NewCheck sets the gas used and the response data but no more info.
// These are the most common info needed to be set by the Handler.
func NewCheck(gasAllocated int64, log string) *CheckResult {
	return &CheckResult{
		GasAllocated: gasAllocated,
		Log:          log,
	}
}

// DeliverResult captures any non-error response from executing
// a transaction.
type DeliverResult struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human readable data, reported on success
	Log string
	// GasUsed is the units of work performed
	GasUsed int64
	// Tags are notifications emitted for every successful state change,
	// so observers can subscribe to or search for operations.
	Tags []common.KVPair
}

// Pair is a shortcut to construct a notification tag.
func Pair(key, value string) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}
