package vault

import (
	"github.com/lockstead/timevault"
	"github.com/lockstead/timevault/coin"
	"github.com/lockstead/timevault/errors"
)

const optKey = "vault"

// genesisOptions is the json shape expected under the "vault" key:
//
//   "vault": {
//     "ticker": "TVLT",
//     "capacity": 100,
//     "lock_period": "168h",
//     "min_deposit": "1 TVLT",
//     "admitted": ["C0FFEE...", ...]
//   }
//
// Every field is optional, missing values fall back to the defaults.
type genesisOptions struct {
	Ticker     string                 `json:"ticker"`
	Capacity   int64                  `json:"capacity"`
	LockPeriod timevault.UnixDuration `json:"lock_period"`
	MinDeposit coin.Coin              `json:"min_deposit"`
	Admitted   []timevault.Address    `json:"admitted"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file.
type Initializer struct{}

var _ timevault.Initializer = Initializer{}

// FromGenesis will parse the configuration and the optional list of
// pre-admitted identities from genesis and save them to the database.
func (Initializer) FromGenesis(opts timevault.Options, kv timevault.KVStore) error {
	var gen genesisOptions
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return errors.Wrap(err, "read genesis options")
	}

	conf := DefaultConfiguration()
	if gen.Ticker != "" {
		conf.Ticker = gen.Ticker
		conf.MinDeposit.Ticker = gen.Ticker
	}
	if gen.Capacity != 0 {
		conf.Capacity = gen.Capacity
	}
	if gen.LockPeriod != 0 {
		conf.LockPeriod = gen.LockPeriod
	}
	if !gen.MinDeposit.IsZero() {
		conf.MinDeposit = gen.MinDeposit
	}
	if err := conf.Validate(); err != nil {
		return errors.Wrap(err, "configuration")
	}
	if err := saveConf(kv, conf); err != nil {
		return err
	}

	ctrl := NewController()
	for _, addr := range gen.Admitted {
		if err := addr.Validate(); err != nil {
			return errors.Wrap(err, "admitted address")
		}
		if _, err := ctrl.Admit(kv, addr, conf); err != nil {
			return errors.Wrapf(err, "admit %s", addr)
		}
	}
	return nil
}
