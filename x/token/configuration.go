package token

import (
	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/coin"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/gconf"
)

const confKey = "token"

// Configuration of the token extension.
type Configuration struct {
	// HoldingDeposit is charged from the payer of every new holding. Nil
	// or zero disables the charge.
	HoldingDeposit *coin.Coin `protobuf:"bytes,1,opt,name=holding_deposit,proto3" json:"holding_deposit"`
}

func (c *Configuration) Validate() error {
	if coin.IsEmpty(c.HoldingDeposit) {
		return nil
	}
	if err := c.HoldingDeposit.Validate(); err != nil {
		return errors.Wrap(err, "holding deposit")
	}
	if !c.HoldingDeposit.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative holding deposit")
	}
	return nil
}

// loadConf returns the stored configuration, or the zero configuration when
// none was saved.
func loadConf(db weave.ReadOnlyKVStore) (Configuration, error) {
	var conf Configuration
	err := gconf.Load(db, confKey, &conf)
	if err != nil && !errors.ErrNotFound.Is(err) {
		return conf, errors.Wrap(err, "token configuration")
	}
	return conf, nil
}
