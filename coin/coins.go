package coin

import (
	"sort"

	"github.com/iov-one/weave-escrow/errors"
)

// Coins is a set of coins of distinct currencies, sorted by ticker, with no
// zero entries.
type Coins []*Coin

// CombineCoins adds all coins together into a normalized set.
func CombineCoins(cs ...Coin) (Coins, error) {
	var res Coins
	for _, c := range cs {
		var err error
		if res, err = res.Add(c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Clone returns a deep copy.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// Add returns a new set with c added. A zero result removes the currency.
func (cs Coins) Add(c Coin) (Coins, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	res := cs.Clone()
	i := sort.Search(len(res), func(i int) bool { return res[i].Ticker >= c.Ticker })
	if i < len(res) && res[i].Ticker == c.Ticker {
		sum, err := res[i].Add(c)
		if err != nil {
			return nil, err
		}
		if sum.IsZero() {
			return append(res[:i], res[i+1:]...), nil
		}
		res[i] = &sum
		return res, nil
	}
	if c.IsZero() {
		return res, nil
	}
	res = append(res, nil)
	copy(res[i+1:], res[i:])
	res[i] = c.Clone()
	return res, nil
}

// Subtract returns a new set with c removed. It fails with ErrAmount when
// the result would be negative.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	if !c.IsNonNegative() {
		return nil, errors.Wrap(errors.ErrAmount, "cannot subtract a negative amount")
	}
	if !cs.Contains(c) {
		return nil, errors.Wrapf(errors.ErrAmount, "%s is more than available %s", c, cs.Amount(c.Ticker))
	}
	return cs.Add(c.Negative())
}

// Amount returns the value held in the given currency.
func (cs Coins) Amount(ticker string) Coin {
	for _, c := range cs {
		if c.Ticker == ticker {
			return *c
		}
	}
	return Coin{Ticker: ticker}
}

// Contains returns true if at least c is held.
func (cs Coins) Contains(c Coin) bool {
	return cs.Amount(c.Ticker).Compare(c) >= 0
}

// IsEmpty returns true if nothing is held.
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// Equals returns true if both sets hold the same value.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate requires a sorted set of valid, positive coins.
func (cs Coins) Validate() error {
	for i, c := range cs {
		if c == nil {
			return errors.Wrap(errors.ErrEmpty, "nil coin")
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if !c.IsPositive() {
			return errors.Wrapf(errors.ErrAmount, "non positive %s", c)
		}
		if i > 0 && cs[i-1].Ticker >= c.Ticker {
			return errors.Wrap(errors.ErrState, "coins not sorted or duplicated")
		}
	}
	return nil
}
