package weave_test

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := weave.Address(b)

		So(addr.String(), ShouldEqual, "414243443132333435364C4842")
		So(addr.String(), ShouldEqual, strings.ToUpper(hex.EncodeToString(b)))
		So(addr.String(), ShouldNotEqual, hex.EncodeToString(b))
	})

	Convey("test hexademical condition printing", t, func() {
		cond := weave.NewCondition("12", "32", []byte("ABCD123456LHB"))

		So(cond.String(), ShouldEqual, "12/32/414243443132333435364C4842")
	})

	Convey("nil address is printed as such", t, func() {
		So(weave.Address(nil).String(), ShouldEqual, "(nil)")
	})
}

func TestConditionDerivationIsDeterministic(t *testing.T) {
	Convey("the same condition always hashes to the same address", t, func() {
		a := weave.NewCondition("escrow", "seed", []byte{1, 2, 3}).Address()
		b := weave.NewCondition("escrow", "seed", []byte{1, 2, 3}).Address()
		So(a, ShouldResemble, b)
		So(len(a), ShouldEqual, weave.AddressLength)
	})

	Convey("extension, type and data all separate the address space", t, func() {
		base := weave.NewCondition("escrow", "seed", []byte{1, 2, 3}).Address()
		So(weave.NewCondition("token", "seed", []byte{1, 2, 3}).Address(), ShouldNotResemble, base)
		So(weave.NewCondition("escrow", "vault", []byte{1, 2, 3}).Address(), ShouldNotResemble, base)
		So(weave.NewCondition("escrow", "seed", []byte{1, 2, 4}).Address(), ShouldNotResemble, base)
	})
}

func TestConditionParse(t *testing.T) {
	cond := weave.NewCondition("sigs", "ed25519", []byte{0xde, 0xad})
	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "sigs", ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, []byte{0xde, 0xad}, data)
	assert.Equal(t, "sigs/ed25519/DEAD", cond.String())

	_, _, _, err = weave.Condition("no-slashes-here").Parse()
	assert.True(t, errors.ErrInput.Is(err))
	assert.True(t, errors.ErrInput.Is(weave.Condition("a/b/c").Validate()))
}

func TestAddressUnmarshalJSON(t *testing.T) {
	addr := weave.NewCondition("foo", "bar", []byte("conditiondata")).Address()
	b32, err := addr.Bech32("tiov")
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr weave.Address
	}{
		"default decoding": {
			json:     fmt.Sprintf(`"%X"`, []byte(addr)),
			wantAddr: addr,
		},
		"hex decoding": {
			json:     fmt.Sprintf(`"hex:%X"`, []byte(addr)),
			wantAddr: addr,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: addr,
		},
		"bech32 decoding": {
			json:     fmt.Sprintf(`"bech32:%s"`, b32),
			wantAddr: addr,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"hex of a wrong length": {
			json:    `"hex:6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a weave.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("got error: %+v", err)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantAddr, a)
		})
	}
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr := weave.NewCondition("foo", "bar", []byte("x")).Address()
	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var got weave.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, addr.Equals(got))
}
