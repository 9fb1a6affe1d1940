package escrow

import (
	"math/big"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/x/token"
	"github.com/shopspring/decimal"
)

// StateOf reports the lifecycle position of the escrow at addr. Addresses
// that never held an escrow report NotFound.
func StateOf(db weave.ReadOnlyKVStore, addr weave.Address) (State, error) {
	if ok, err := NewBucket().Has(db, addr); err != nil {
		return NotFound, err
	} else if ok {
		return Created, nil
	}
	o, err := NewOutcomeBucket().Get(db, addr)
	if err != nil {
		return NotFound, err
	}
	if o == nil {
		return NotFound, nil
	}
	return o.State, nil
}

// Offer describes what an open escrow trades.
type Offer struct {
	Escrow *Escrow
	// Locked is the vault content in units of mint a.
	Locked uint64
	// Price is Receive divided by Locked, in base units.
	Price decimal.Decimal
	// DisplayLocked and DisplayReceive use the decimals of each mint.
	DisplayLocked  string
	DisplayReceive string
}

// Quote returns the offer of the open escrow at addr.
func Quote(db weave.ReadOnlyKVStore, tokens token.Controller, addr weave.Address) (*Offer, error) {
	e, err := NewBucket().Get(db, addr)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "escrow %s", addr)
	}
	vault, err := tokens.Holding(db, e.Vault)
	if err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	mintA, err := tokens.Mint(db, e.MintA)
	if err != nil {
		return nil, errors.Wrap(err, "mint a")
	}
	mintB, err := tokens.Mint(db, e.MintB)
	if err != nil {
		return nil, errors.Wrap(err, "mint b")
	}

	offer := &Offer{
		Escrow:         e,
		Locked:         vault.Amount,
		DisplayLocked:  mintA.Display(vault.Amount),
		DisplayReceive: mintB.Display(e.Receive),
	}
	if vault.Amount > 0 {
		receive := decimal.NewFromBigInt(new(big.Int).SetUint64(e.Receive), 0)
		locked := decimal.NewFromBigInt(new(big.Int).SetUint64(vault.Amount), 0)
		offer.Price = receive.Div(locked)
	}
	return offer, nil
}
