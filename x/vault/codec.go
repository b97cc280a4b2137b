package vault

import (
	amino "github.com/tendermint/go-amino"

	"github.com/lockstead/timevault"
)

// cdc serializes all models and messages of this package.
var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*timevault.Msg)(nil), nil)
	cdc.RegisterConcrete(&AdmitMsg{}, "vault/admit", nil)
	cdc.RegisterConcrete(&DepositMsg{}, "vault/deposit", nil)
	cdc.RegisterConcrete(&WithdrawMsg{}, "vault/withdraw", nil)
	cdc.RegisterConcrete(&ExtendLockMsg{}, "vault/extend_lock", nil)
}
