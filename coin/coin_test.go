package coin

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/weavetest/assert"
)

func TestCoinArithmetic(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		sum     Coin
		wantErr *errors.Error
	}{
		"simple": {
			a:   NewCoin(1, 200, "IOV"),
			b:   NewCoin(2, 300, "IOV"),
			sum: NewCoin(3, 500, "IOV"),
		},
		"fraction overflow": {
			a:   NewCoin(1, 600000000, "IOV"),
			b:   NewCoin(0, 700000000, "IOV"),
			sum: NewCoin(2, 300000000, "IOV"),
		},
		"negative result": {
			a:   NewCoin(1, 0, "IOV"),
			b:   NewCoin(-1, -500000000, "IOV"),
			sum: NewCoin(0, -500000000, "IOV"),
		},
		"zero without ticker": {
			a:   Coin{},
			b:   NewCoin(4, 0, "ETH"),
			sum: NewCoin(4, 0, "ETH"),
		},
		"different currencies": {
			a:       NewCoin(1, 0, "IOV"),
			b:       NewCoin(1, 0, "ETH"),
			wantErr: errors.ErrCurrency,
		},
		"overflow": {
			a:       NewCoin(MaxInt, 0, "IOV"),
			b:       NewCoin(1, 0, "IOV"),
			wantErr: errors.ErrOverflow,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.sum, got)
		})
	}
}

func TestParseHumanFormat(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    Coin
		wantErr bool
	}{
		"whole":        {raw: "3 IOV", want: NewCoin(3, 0, "IOV")},
		"fractional":   {raw: "1.5 SOL", want: NewCoin(1, 500000000, "SOL")},
		"no space":     {raw: "0.000000001DEP", want: NewCoin(0, 1, "DEP")},
		"negative":     {raw: "-2.25 IOV", want: NewCoin(-2, -250000000, "IOV")},
		"bad ticker":   {raw: "1 iov", wantErr: true},
		"too precise":  {raw: "1.0000000001 IOV", wantErr: true},
		"missing unit": {raw: "12", wantErr: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseHumanFormat(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("want error, got %v", got)
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)

			// String output can be parsed back
			again, err := ParseHumanFormat(got.String())
			assert.Nil(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestCoinJSON(t *testing.T) {
	var fromString, fromObject Coin
	assert.Nil(t, json.Unmarshal([]byte(`"1.5 DEP"`), &fromString))
	assert.Nil(t, json.Unmarshal([]byte(`{"whole": 1, "fractional": 500000000, "ticker": "DEP"}`), &fromObject))
	assert.Equal(t, fromString, fromObject)

	raw, err := json.Marshal(fromString)
	assert.Nil(t, err)
	assert.Equal(t, `"1.5 DEP"`, string(raw))
}

func TestCoinsSet(t *testing.T) {
	cs, err := CombineCoins(NewCoin(2, 0, "IOV"), NewCoin(1, 0, "DEP"), NewCoin(3, 0, "IOV"))
	assert.Nil(t, err)
	assert.Nil(t, cs.Validate())
	assert.Equal(t, 2, len(cs))
	assert.Equal(t, "DEP", cs[0].Ticker)
	assert.Equal(t, NewCoin(5, 0, "IOV"), cs.Amount("IOV"))

	// subtracting everything drops the currency
	left, err := cs.Subtract(NewCoin(1, 0, "DEP"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(left))
	// the original set is left untouched
	assert.Equal(t, 2, len(cs))

	_, err = left.Subtract(NewCoin(5, 1, "IOV"))
	assert.IsErr(t, errors.ErrAmount, err)
	_, err = left.Subtract(NewCoin(1, 0, "ETH"))
	assert.IsErr(t, errors.ErrAmount, err)

	// zero values never enter the set
	same, err := left.Add(NewCoin(0, 0, "ETH"))
	assert.Nil(t, err)
	assert.Equal(t, true, same.Equals(left))
}

func TestCoinBinary(t *testing.T) {
	c := NewCoin(-7, -100, "IOV")
	bz, err := c.Marshal()
	assert.Nil(t, err)
	var got Coin
	assert.Nil(t, got.Unmarshal(bz))
	assert.Equal(t, c, got)
}
