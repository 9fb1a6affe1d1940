package token

import (
	"math"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/coin"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/x/cash"
)

// Controller is the functionality other extensions need from this one.
//
// None of the methods checks signatures. authority is the address the
// caller has already authenticated, or a condition address the calling
// extension speaks for.
type Controller interface {
	Mint(db weave.ReadOnlyKVStore, addr weave.Address) (*Mint, error)
	Holding(db weave.ReadOnlyKVStore, addr weave.Address) (*Holding, error)
	CreateMint(db weave.KVStore, authority weave.Address, name string, decimals uint32) (*Mint, error)
	MintTo(db weave.KVStore, mint, dest weave.Address, amount uint64, authority weave.Address) error
	CreateHolding(db weave.KVStore, payer, mint, owner weave.Address) (*Holding, error)
	EnsureHolding(db weave.KVStore, payer, mint, owner weave.Address) (*Holding, error)
	Transfer(db weave.KVStore, src, dest weave.Address, amount uint64, authority weave.Address) error
	CloseHolding(db weave.KVStore, addr, authority, rentDest weave.Address) error
}

// BaseController is the default Controller.
type BaseController struct {
	mints    MintBucket
	holdings HoldingBucket
	bank     cash.Controller
}

var _ Controller = BaseController{}

// NewController returns a controller that charges holding deposits through
// bank.
func NewController(bank cash.Controller) BaseController {
	return BaseController{
		mints:    NewMintBucket(),
		holdings: NewHoldingBucket(),
		bank:     bank,
	}
}

// Mint returns the mint at addr. Fails with ErrNotFound if there is none.
func (c BaseController) Mint(db weave.ReadOnlyKVStore, addr weave.Address) (*Mint, error) {
	m, err := c.mints.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "mint %s", addr)
	}
	return m, nil
}

// Holding returns the holding at addr. Fails with ErrNotFound if there is
// none.
func (c BaseController) Holding(db weave.ReadOnlyKVStore, addr weave.Address) (*Holding, error) {
	h, err := c.holdings.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "holding %s", addr)
	}
	return h, nil
}

// CreateMint registers a new asset with zero supply.
func (c BaseController) CreateMint(db weave.KVStore, authority weave.Address, name string, decimals uint32) (*Mint, error) {
	m := &Mint{
		Address:   MintAddress(authority, name),
		Authority: authority,
		Name:      name,
		Decimals:  decimals,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	switch ok, err := c.mints.Has(db, m.Address); {
	case err != nil:
		return nil, err
	case ok:
		return nil, errors.Wrapf(errors.ErrDuplicate, "mint %s", m.Address)
	}
	if err := c.mints.Put(db, m); err != nil {
		return nil, err
	}
	return m, nil
}

// MintTo issues amount new units of mint into the dest holding. Only the
// mint authority may issue.
func (c BaseController) MintTo(db weave.KVStore, mint, dest weave.Address, amount uint64, authority weave.Address) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	m, err := c.Mint(db, mint)
	if err != nil {
		return err
	}
	if !m.Authority.Equals(authority) {
		return errors.Wrap(errors.ErrUnauthorized, "not the mint authority")
	}
	h, err := c.Holding(db, dest)
	if err != nil {
		return err
	}
	if !h.Mint.Equals(mint) {
		return errors.Wrapf(errors.ErrMismatch, "holding %s is not of mint %s", dest, mint)
	}
	if m.Supply > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "supply")
	}
	m.Supply += amount
	h.Amount += amount
	if err := c.mints.Put(db, m); err != nil {
		return err
	}
	return c.holdings.Put(db, h)
}

// CreateHolding creates the holding of owner in mint. The configured
// deposit is moved from the payer wallet to the wallet of the holding
// address. Fails with ErrDuplicate if the holding exists.
func (c BaseController) CreateHolding(db weave.KVStore, payer, mint, owner weave.Address) (*Holding, error) {
	if _, err := c.Mint(db, mint); err != nil {
		return nil, err
	}
	h := &Holding{
		Metadata: &weave.Metadata{Schema: 1},
		Address:  HoldingAddress(mint, owner),
		Mint:     mint,
		Owner:    owner,
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	switch ok, err := c.holdings.Has(db, h.Address); {
	case err != nil:
		return nil, err
	case ok:
		return nil, errors.Wrapf(errors.ErrDuplicate, "holding %s", h.Address)
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !coin.IsEmpty(conf.HoldingDeposit) {
		if err := c.bank.MoveCoins(db, payer, h.Address, *conf.HoldingDeposit); err != nil {
			return nil, errors.Wrap(err, "holding deposit")
		}
	}
	if err := c.holdings.Put(db, h); err != nil {
		return nil, err
	}
	return h, nil
}

// EnsureHolding returns the holding of owner in mint, creating it at the
// payer's expense when missing.
func (c BaseController) EnsureHolding(db weave.KVStore, payer, mint, owner weave.Address) (*Holding, error) {
	h, err := c.holdings.Get(db, HoldingAddress(mint, owner))
	if err != nil {
		return nil, err
	}
	if h != nil {
		return h, nil
	}
	return c.CreateHolding(db, payer, mint, owner)
}

// Transfer moves amount between two holdings of the same mint. authority
// must be the owner of src. A transfer to the source itself is checked like
// any other and leaves the balance unchanged.
func (c BaseController) Transfer(db weave.KVStore, src, dest weave.Address, amount uint64, authority weave.Address) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	from, err := c.Holding(db, src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	to, err := c.Holding(db, dest)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if !from.Mint.Equals(to.Mint) {
		return errors.Wrap(errors.ErrMismatch, "holdings of different mints")
	}
	if !from.Owner.Equals(authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s does not own %s", authority, src)
	}
	if from.Amount < amount {
		return errors.Wrapf(errors.ErrAmount, "holding %s has %d, want %d", src, from.Amount, amount)
	}
	if src.Equals(dest) {
		return nil
	}
	if to.Amount > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "destination amount")
	}
	from.Amount -= amount
	to.Amount += amount
	if err := c.holdings.Put(db, from); err != nil {
		return err
	}
	return c.holdings.Put(db, to)
}

// CloseHolding deletes an empty holding owned by authority and sends
// everything locked in the wallet of the holding address to rentDest.
func (c BaseController) CloseHolding(db weave.KVStore, addr, authority, rentDest weave.Address) error {
	h, err := c.Holding(db, addr)
	if err != nil {
		return err
	}
	if !h.Owner.Equals(authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s does not own %s", authority, addr)
	}
	if h.Amount != 0 {
		return errors.Wrapf(errors.ErrState, "holding %s is not empty", addr)
	}
	if err := c.holdings.Delete(db, addr); err != nil {
		return err
	}
	if err := cash.Sweep(db, c.bank, addr, rentDest); err != nil {
		return errors.Wrap(err, "release deposit")
	}
	return nil
}
