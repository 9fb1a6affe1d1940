package escrow

import (
	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/coin"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/gconf"
)

const confKey = "escrow"

// Configuration of the escrow extension.
type Configuration struct {
	// RecordDeposit is locked in the wallet of the record address while
	// the escrow is open. Nil or zero disables it.
	RecordDeposit *coin.Coin `protobuf:"bytes,1,opt,name=record_deposit,proto3" json:"record_deposit"`
}

func (c *Configuration) Validate() error {
	if coin.IsEmpty(c.RecordDeposit) {
		return nil
	}
	if err := c.RecordDeposit.Validate(); err != nil {
		return errors.Wrap(err, "record deposit")
	}
	if !c.RecordDeposit.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative record deposit")
	}
	return nil
}

func loadConf(db weave.ReadOnlyKVStore) (Configuration, error) {
	var conf Configuration
	err := gconf.Load(db, confKey, &conf)
	if err != nil && !errors.ErrNotFound.Is(err) {
		return conf, errors.Wrap(err, "escrow configuration")
	}
	return conf, nil
}

// Initializer saves the escrow configuration from genesis. There are no
// genesis escrows, every escrow is opened by a maker.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	return gconf.InitConfig(db, opts, confKey, &Configuration{})
}
