package token

import (
	"testing"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/iov-one/weave-escrow/weavetest/assert"
)

func TestMintDisplay(t *testing.T) {
	cases := map[string]struct {
		decimals uint32
		amount   uint64
		want     string
	}{
		"no decimals":   {decimals: 0, amount: 1000000, want: "1000000"},
		"six decimals":  {decimals: 6, amount: 1500000, want: "1.500000"},
		"less than one": {decimals: 9, amount: 7, want: "0.000000007"},
		"max uint64":    {decimals: 2, amount: 18446744073709551615, want: "184467440737095516.15"},
		"zero amount":   {decimals: 3, amount: 0, want: "0.000"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			m := Mint{Decimals: tc.decimals}
			assert.Equal(t, tc.want, m.Display(tc.amount))
		})
	}
}

func TestDerivedAddresses(t *testing.T) {
	authority := weavetest.NewCondition().Address()
	owner := weavetest.NewCondition().Address()

	mint := MintAddress(authority, "alpha")
	assert.Nil(t, mint.Validate())
	assert.Equal(t, mint, MintAddress(authority, "alpha"))
	if mint.Equals(MintAddress(authority, "beta")) {
		t.Fatal("different names must yield different mints")
	}

	h := HoldingAddress(mint, owner)
	assert.Equal(t, h, HoldingAddress(mint, owner))
	if h.Equals(HoldingAddress(mint, authority)) {
		t.Fatal("different owners must yield different holdings")
	}
	if h.Equals(HoldingAddress(MintAddress(authority, "beta"), owner)) {
		t.Fatal("different mints must yield different holdings")
	}
	assert.Equal(t, weave.NewCondition("token", "holding", append(append([]byte{}, mint...), owner...)).Address(), h)
}

func TestHoldingValidate(t *testing.T) {
	mint := MintAddress(weavetest.NewCondition().Address(), "alpha")
	owner := weavetest.NewCondition().Address()
	md := &weave.Metadata{Schema: 1}

	cases := map[string]struct {
		h       Holding
		wantErr *errors.Error
	}{
		"valid": {
			h: Holding{Metadata: md, Address: HoldingAddress(mint, owner), Mint: mint, Owner: owner, Amount: 4},
		},
		"missing metadata": {
			h:       Holding{Address: HoldingAddress(mint, owner), Mint: mint, Owner: owner},
			wantErr: errors.ErrMetadata,
		},
		"address not derived": {
			h:       Holding{Metadata: md, Address: weavetest.NewCondition().Address(), Mint: mint, Owner: owner},
			wantErr: errors.ErrMismatch,
		},
		"missing owner": {
			h:       Holding{Metadata: md, Address: HoldingAddress(mint, nil), Mint: mint},
			wantErr: errors.ErrEmpty,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.h.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}
