package vault

import (
	"time"

	"github.com/lockstead/timevault"
	"github.com/lockstead/timevault/coin"
	"github.com/lockstead/timevault/errors"
	"github.com/lockstead/timevault/orm"
)

// Default configuration values.
const (
	DefaultTicker   = "TVLT"
	DefaultCapacity = 100
	DefaultLockDays = 7
)

// Configuration holds the ledger-wide parameters. It is written once
// from genesis options and read on every operation.
type Configuration struct {
	// Ticker is the only currency the vault holds.
	Ticker string `json:"ticker"`
	// Capacity is the maximum number of admitted identities.
	Capacity int64 `json:"capacity"`
	// LockPeriod is how long a deposit stays locked.
	LockPeriod timevault.UnixDuration `json:"lock_period"`
	// MinDeposit is the smallest accepted deposit.
	MinDeposit coin.Coin `json:"min_deposit"`
}

var _ orm.CloneableData = (*Configuration)(nil)

// DefaultConfiguration returns the values used when genesis options
// leave a field unset: TVLT, 100 seats, 7 days, 1 whole coin.
func DefaultConfiguration() Configuration {
	return Configuration{
		Ticker:     DefaultTicker,
		Capacity:   DefaultCapacity,
		LockPeriod: timevault.AsUnixDuration(DefaultLockDays * 24 * time.Hour),
		MinDeposit: coin.NewCoin(1, 0, DefaultTicker),
	}
}

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, c)
}

func (c *Configuration) Validate() error {
	if !coin.IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker: %q", c.Ticker)
	}
	if c.Capacity <= 0 {
		return errors.Wrap(errors.ErrInput, "capacity must be positive")
	}
	if c.LockPeriod <= 0 {
		return errors.Wrap(errors.ErrInput, "lock period must be positive")
	}
	if err := c.MinDeposit.Validate(); err != nil {
		return errors.Wrap(err, "min deposit")
	}
	if !c.MinDeposit.IsPositive() {
		return errors.Wrap(errors.ErrInput, "min deposit must be positive")
	}
	if c.MinDeposit.Ticker != c.Ticker {
		return errors.Wrap(errors.ErrCurrency, "min deposit in foreign currency")
	}
	return nil
}

func (c *Configuration) Copy() orm.CloneableData {
	return &Configuration{
		Ticker:     c.Ticker,
		Capacity:   c.Capacity,
		LockPeriod: c.LockPeriod,
		MinDeposit: *c.MinDeposit.Clone(),
	}
}

const configBucketName = "cfg"

var configKey = []byte("conf")

func newConfigBucket() orm.Bucket {
	return orm.NewBucket(configBucketName, orm.NewSimpleObj(nil, new(Configuration)))
}

// loadConf returns the stored configuration, or the defaults if the
// genesis never wrote one.
func loadConf(db timevault.KVStore) (Configuration, error) {
	obj, err := newConfigBucket().Get(db, configKey)
	if err != nil {
		return Configuration{}, errors.Wrap(err, "load configuration")
	}
	if obj == nil {
		return DefaultConfiguration(), nil
	}
	conf, ok := obj.Value().(*Configuration)
	if !ok {
		return Configuration{}, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return *conf, nil
}

// saveConf persists the configuration.
func saveConf(db timevault.KVStore, conf Configuration) error {
	return newConfigBucket().Save(db, orm.NewSimpleObj(configKey, &conf))
}
