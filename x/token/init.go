package token

import (
	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/gconf"
)

const optKey = "token"

// GenesisMint declares a mint in the genesis file.
type GenesisMint struct {
	Authority weave.Address `json:"authority"`
	Name      string        `json:"name"`
	Decimals  uint32        `json:"decimals"`
}

// GenesisHolding declares a holding and its initial amount. Mint is
// addressed by authority and name, so the genesis file does not need
// derived addresses.
type GenesisHolding struct {
	Authority weave.Address `json:"authority"`
	MintName  string        `json:"mint"`
	Owner     weave.Address `json:"owner"`
	Amount    uint64        `json:"amount"`
}

type genesis struct {
	Mints    []GenesisMint    `json:"mints"`
	Holdings []GenesisHolding `json:"holdings"`
}

// Initializer loads the configuration, mints and holdings from genesis.
// Genesis holdings are free of deposits.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	if err := gconf.InitConfig(db, opts, confKey, &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	var gen genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	mints := NewMintBucket()
	for _, gm := range gen.Mints {
		m := &Mint{
			Address:   MintAddress(gm.Authority, gm.Name),
			Authority: gm.Authority,
			Name:      gm.Name,
			Decimals:  gm.Decimals,
		}
		if err := mints.Put(db, m); err != nil {
			return errors.Wrapf(err, "genesis mint %q", gm.Name)
		}
	}

	holdings := NewHoldingBucket()
	for _, gh := range gen.Holdings {
		addr := MintAddress(gh.Authority, gh.MintName)
		m, err := mints.Get(db, addr)
		if err != nil {
			return err
		}
		if m == nil {
			return errors.Wrapf(errors.ErrNotFound, "genesis holding mint %q", gh.MintName)
		}
		h := &Holding{
			Metadata: &weave.Metadata{Schema: 1},
			Address:  HoldingAddress(addr, gh.Owner),
			Mint:     addr,
			Owner:    gh.Owner,
			Amount:   gh.Amount,
		}
		if ok, err := holdings.Has(db, h.Address); err != nil {
			return err
		} else if ok {
			return errors.Wrapf(errors.ErrDuplicate, "genesis holding %s", h.Address)
		}
		m.Supply += gh.Amount
		if err := holdings.Put(db, h); err != nil {
			return errors.Wrap(err, "genesis holding")
		}
		if err := mints.Put(db, m); err != nil {
			return err
		}
	}
	return nil
}
