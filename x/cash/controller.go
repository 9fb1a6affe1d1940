package cash

import (
	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/coin"
	"github.com/iov-one/weave-escrow/errors"
)

// Controller is the functionality other extensions need from native
// wallets.
type Controller interface {
	Balance(weave.ReadOnlyKVStore, weave.Address) (coin.Coins, error)
	CoinMover
	IssueCoins(weave.KVStore, weave.Address, coin.Coin) error
}

// CoinMover moves coins between wallets. Authorization is the business of
// the caller.
type CoinMover interface {
	MoveCoins(db weave.KVStore, src, dest weave.Address, amount coin.Coin) error
}

// BaseController is the default Controller working on the cash bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the default bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

// Balance returns the coins held by the address. A missing wallet has no
// coins and is not an error.
func (c BaseController) Balance(db weave.ReadOnlyKVStore, addr weave.Address) (coin.Coins, error) {
	w, err := c.bucket.Get(db, addr)
	if err != nil || w == nil {
		return nil, err
	}
	return w.Coins(), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails with ErrAmount.
func (c BaseController) MoveCoins(db weave.KVStore, src, dest weave.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same")
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrAmount, "empty wallet %s", src)
	}
	if err := sender.Subtract(amount); err != nil {
		return errors.Wrapf(err, "wallet %s", src)
	}

	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	if err := c.bucket.Save(db, sender); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

// IssueCoins adds the given amount of coins to the destination address.
// Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db weave.KVStore, dest weave.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

// MoveCoins is a helper that moves every coin of amounts using the given
// mover. It stops at the first failure and leaves rollback to the caller.
func MoveCoins(db weave.KVStore, mover CoinMover, src, dest weave.Address, amounts coin.Coins) error {
	for _, c := range amounts {
		if err := mover.MoveCoins(db, src, dest, *c); err != nil {
			return err
		}
	}
	return nil
}

// Sweep moves the whole balance of src to dest. An empty source is not an
// error.
func Sweep(db weave.KVStore, ctrl Controller, src, dest weave.Address) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	balance, err := ctrl.Balance(db, src)
	if err != nil {
		return err
	}
	return MoveCoins(db, ctrl, src, dest, balance)
}
