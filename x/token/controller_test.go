package token

import (
	"testing"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/coin"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/gconf"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/iov-one/weave-escrow/weavetest/assert"
	"github.com/iov-one/weave-escrow/x/cash"
)

var deposit = coin.NewCoin(0, 2039280, "DEP")

// fixture returns a store with the holding deposit configured, a payer
// wallet funded with ten deposits and a mint owned by authority.
func fixture(t testing.TB) (weave.CacheableKVStore, BaseController, weave.Address, *Mint) {
	t.Helper()
	db := store.MemStore()
	bank := cash.NewController()
	ctrl := NewController(bank)

	assert.Nil(t, gconf.Save(db, confKey, &Configuration{HoldingDeposit: &deposit}))
	payer := weavetest.NewCondition().Address()
	assert.Nil(t, bank.IssueCoins(db, payer, coin.NewCoin(0, 10*deposit.Fractional, "DEP")))

	authority := weavetest.NewCondition().Address()
	mint, err := ctrl.CreateMint(db, authority, "alpha", 6)
	assert.Nil(t, err)
	return db, ctrl, payer, mint
}

func TestCreateMint(t *testing.T) {
	db, ctrl, _, mint := fixture(t)

	got, err := ctrl.Mint(db, mint.Address)
	assert.Nil(t, err)
	assert.Equal(t, mint, got)

	_, err = ctrl.CreateMint(db, mint.Authority, "alpha", 2)
	assert.IsErr(t, errors.ErrDuplicate, err)

	_, err = ctrl.CreateMint(db, mint.Authority, "no spaces allowed", 2)
	assert.IsErr(t, errors.ErrInput, err)

	_, err = ctrl.CreateMint(db, mint.Authority, "beta", MaxDecimals+1)
	assert.IsErr(t, errors.ErrInput, err)

	_, err = ctrl.Mint(db, weavetest.NewCondition().Address())
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestCreateHoldingChargesDeposit(t *testing.T) {
	db, ctrl, payer, mint := fixture(t)
	bank := cash.NewController()
	owner := weavetest.NewCondition().Address()

	h, err := ctrl.CreateHolding(db, payer, mint.Address, owner)
	assert.Nil(t, err)
	assert.Equal(t, HoldingAddress(mint.Address, owner), h.Address)
	assert.Equal(t, uint64(0), h.Amount)

	locked, err := bank.Balance(db, h.Address)
	assert.Nil(t, err)
	assert.Equal(t, deposit, locked.Amount("DEP"))
	left, err := bank.Balance(db, payer)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(0, 9*deposit.Fractional, "DEP"), left.Amount("DEP"))

	_, err = ctrl.CreateHolding(db, payer, mint.Address, owner)
	assert.IsErr(t, errors.ErrDuplicate, err)

	// EnsureHolding returns the existing one without charging again.
	again, err := ctrl.EnsureHolding(db, payer, mint.Address, owner)
	assert.Nil(t, err)
	assert.Equal(t, h, again)
	left, err = bank.Balance(db, payer)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(0, 9*deposit.Fractional, "DEP"), left.Amount("DEP"))

	_, err = ctrl.CreateHolding(db, payer, weavetest.NewCondition().Address(), owner)
	assert.IsErr(t, errors.ErrNotFound, err)

	// A payer without coins cannot create holdings.
	broke := weavetest.NewCondition().Address()
	_, err = ctrl.EnsureHolding(db, broke, mint.Address, weavetest.NewCondition().Address())
	assert.IsErr(t, errors.ErrAmount, err)
}

func TestCreateHoldingWithoutDeposit(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(cash.NewController())
	authority := weavetest.NewCondition().Address()
	mint, err := ctrl.CreateMint(db, authority, "free", 0)
	assert.Nil(t, err)

	// No configuration means no deposit, so an empty payer is fine.
	payer := weavetest.NewCondition().Address()
	_, err = ctrl.CreateHolding(db, payer, mint.Address, authority)
	assert.Nil(t, err)

	list, err := ctrl.holdings.ByOwner(db, authority)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(list))
}

func TestMintTo(t *testing.T) {
	db, ctrl, payer, mint := fixture(t)
	owner := weavetest.NewCondition().Address()
	h, err := ctrl.CreateHolding(db, payer, mint.Address, owner)
	assert.Nil(t, err)

	other, err := ctrl.CreateMint(db, mint.Authority, "other", 0)
	assert.Nil(t, err)
	foreign, err := ctrl.CreateHolding(db, payer, other.Address, owner)
	assert.Nil(t, err)

	cases := map[string]struct {
		dest      weave.Address
		amount    uint64
		authority weave.Address
		wantErr   *errors.Error
	}{
		"issue": {
			dest:      h.Address,
			amount:    1000000,
			authority: mint.Authority,
		},
		"not the authority": {
			dest:      h.Address,
			amount:    1,
			authority: owner,
			wantErr:   errors.ErrUnauthorized,
		},
		"holding of another mint": {
			dest:      foreign.Address,
			amount:    1,
			authority: mint.Authority,
			wantErr:   errors.ErrMismatch,
		},
		"zero": {
			dest:      h.Address,
			authority: mint.Authority,
			wantErr:   errors.ErrAmount,
		},
		"missing holding": {
			dest:      weavetest.NewCondition().Address(),
			amount:    1,
			authority: mint.Authority,
			wantErr:   errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			cache := db.CacheWrap()
			defer cache.Discard()

			err := ctrl.MintTo(cache, mint.Address, tc.dest, tc.amount, tc.authority)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			got, err := ctrl.Holding(cache, tc.dest)
			assert.Nil(t, err)
			assert.Equal(t, tc.amount, got.Amount)
			m, err := ctrl.Mint(cache, mint.Address)
			assert.Nil(t, err)
			assert.Equal(t, tc.amount, m.Supply)
		})
	}
}

func TestTransfer(t *testing.T) {
	db, ctrl, payer, mint := fixture(t)
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()
	aliceH, err := ctrl.CreateHolding(db, payer, mint.Address, alice)
	assert.Nil(t, err)
	bobH, err := ctrl.CreateHolding(db, payer, mint.Address, bob)
	assert.Nil(t, err)
	assert.Nil(t, ctrl.MintTo(db, mint.Address, aliceH.Address, 500, mint.Authority))

	other, err := ctrl.CreateMint(db, mint.Authority, "other", 0)
	assert.Nil(t, err)
	bobOther, err := ctrl.CreateHolding(db, payer, other.Address, bob)
	assert.Nil(t, err)

	cases := map[string]struct {
		src, dest weave.Address
		amount    uint64
		authority weave.Address
		wantErr   *errors.Error
		wantSrc   uint64
		wantDest  uint64
	}{
		"part": {
			src: aliceH.Address, dest: bobH.Address, amount: 200, authority: alice,
			wantSrc: 300, wantDest: 200,
		},
		"everything": {
			src: aliceH.Address, dest: bobH.Address, amount: 500, authority: alice,
			wantSrc: 0, wantDest: 500,
		},
		"more than held": {
			src: aliceH.Address, dest: bobH.Address, amount: 501, authority: alice,
			wantErr: errors.ErrAmount,
		},
		"not the owner": {
			src: aliceH.Address, dest: bobH.Address, amount: 1, authority: bob,
			wantErr: errors.ErrUnauthorized,
		},
		"different mints": {
			src: aliceH.Address, dest: bobOther.Address, amount: 1, authority: alice,
			wantErr: errors.ErrMismatch,
		},
		"to itself": {
			src: aliceH.Address, dest: aliceH.Address, amount: 500, authority: alice,
			wantSrc: 500, wantDest: 500,
		},
		"to itself more than held": {
			src: aliceH.Address, dest: aliceH.Address, amount: 501, authority: alice,
			wantErr: errors.ErrAmount,
		},
		"zero": {
			src: aliceH.Address, dest: bobH.Address, authority: alice,
			wantErr: errors.ErrAmount,
		},
		"missing destination": {
			src: aliceH.Address, dest: HoldingAddress(mint.Address, payer), amount: 1, authority: alice,
			wantErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			cache := db.CacheWrap()
			defer cache.Discard()

			err := ctrl.Transfer(cache, tc.src, tc.dest, tc.amount, tc.authority)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			src, err := ctrl.Holding(cache, tc.src)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantSrc, src.Amount)
			dest, err := ctrl.Holding(cache, tc.dest)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantDest, dest.Amount)
		})
	}
}

func TestCloseHolding(t *testing.T) {
	db, ctrl, payer, mint := fixture(t)
	bank := cash.NewController()
	owner := weavetest.NewCondition().Address()
	rent := weavetest.NewCondition().Address()

	h, err := ctrl.CreateHolding(db, payer, mint.Address, owner)
	assert.Nil(t, err)
	assert.Nil(t, ctrl.MintTo(db, mint.Address, h.Address, 1, mint.Authority))

	assert.IsErr(t, errors.ErrState, ctrl.CloseHolding(db, h.Address, owner, rent))
	assert.IsErr(t, errors.ErrUnauthorized, ctrl.CloseHolding(db, h.Address, payer, rent))

	// Empty it first.
	sink, err := ctrl.CreateHolding(db, payer, mint.Address, payer)
	assert.Nil(t, err)
	assert.Nil(t, ctrl.Transfer(db, h.Address, sink.Address, 1, owner))

	assert.Nil(t, ctrl.CloseHolding(db, h.Address, owner, rent))
	_, err = ctrl.Holding(db, h.Address)
	assert.IsErr(t, errors.ErrNotFound, err)

	got, err := bank.Balance(db, rent)
	assert.Nil(t, err)
	assert.Equal(t, deposit, got.Amount("DEP"))
	left, err := bank.Balance(db, h.Address)
	assert.Nil(t, err)
	assert.Equal(t, true, left.IsEmpty())

	list, err := ctrl.holdings.ByOwner(db, owner)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(list))

	assert.IsErr(t, errors.ErrNotFound, ctrl.CloseHolding(db, h.Address, owner, rent))
}
