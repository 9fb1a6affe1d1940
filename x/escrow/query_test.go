package escrow

import (
	"testing"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/iov-one/weave-escrow/weavetest/assert"
)

func TestStateOf(t *testing.T) {
	e := newEnv(t)
	settled := RecordAddress(e.maker.Address(), 1)
	cancelled := RecordAddress(e.maker.Address(), 2)
	open := RecordAddress(e.maker.Address(), 3)

	for _, seed := range []uint64{1, 2, 3} {
		_, err := e.exec(t, e.maker, e.make(seed, 1000, 10))
		assert.Nil(t, err)
	}
	_, err := e.exec(t, e.taker, e.take(1))
	assert.Nil(t, err)
	_, err = e.exec(t, e.maker, e.refund(2))
	assert.Nil(t, err)

	cases := map[string]struct {
		addr []byte
		want State
	}{
		"settled":   {addr: settled, want: Settled},
		"cancelled": {addr: cancelled, want: Cancelled},
		"open":      {addr: open, want: Created},
		"never":     {addr: weavetest.NewCondition().Address(), want: NotFound},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := StateOf(e.db, tc.addr)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestQuote(t *testing.T) {
	e := newEnv(t)
	_, err := e.exec(t, e.maker, e.make(9, 1000000, 2500000))
	assert.Nil(t, err)

	offer, err := Quote(e.db, e.tokens, RecordAddress(e.maker.Address(), 9))
	assert.Nil(t, err)
	assert.Equal(t, uint64(1000000), offer.Locked)
	assert.Equal(t, "2.5", offer.Price.String())
	assert.Equal(t, "1.000000", offer.DisplayLocked)
	assert.Equal(t, "2.500000", offer.DisplayReceive)

	_, err = Quote(e.db, e.tokens, RecordAddress(e.maker.Address(), 10))
	assert.IsErr(t, errors.ErrNotFound, err)
}
