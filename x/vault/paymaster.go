package vault

import (
	"github.com/lockstead/timevault"
	"github.com/lockstead/timevault/coin"
)

// Paymaster settles withdrawals outside the ledger. It is invoked
// only after all book-keeping for the withdrawal is recorded.
//
// Implementations are not trusted: they may fail, in which case the
// whole withdrawal is rolled back, and they may call back into the
// ledger, which the reentrancy guard rejects.
type Paymaster interface {
	Pay(ctx timevault.Context, recipient timevault.Address, amount coin.Coin) error
}

// PaymasterFunc turns a plain function into a Paymaster.
type PaymasterFunc func(ctx timevault.Context, recipient timevault.Address, amount coin.Coin) error

var _ Paymaster = PaymasterFunc(nil)

func (f PaymasterFunc) Pay(ctx timevault.Context, recipient timevault.Address, amount coin.Coin) error {
	return f(ctx, recipient, amount)
}
