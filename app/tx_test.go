package app

import (
	"testing"

	"github.com/iov-one/weave-escrow/crypto"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/iov-one/weave-escrow/x/escrow"
	"github.com/iov-one/weave-escrow/x/sigs"
	"github.com/iov-one/weave-escrow/x/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxGetMsg(t *testing.T) {
	mk := &escrow.MakeMsg{Maker: weavetest.NewCondition().Address(), Seed: 1}
	refund := &escrow.RefundMsg{Maker: weavetest.NewCondition().Address(), Seed: 1}

	cases := map[string]struct {
		tx      *Tx
		want    interface{}
		wantErr *errors.Error
	}{
		"one message":  {tx: &Tx{EscrowMakeMsg: mk}, want: mk},
		"no message":   {tx: &Tx{}, wantErr: errors.ErrMsg},
		"two messages": {tx: &Tx{EscrowMakeMsg: mk, EscrowRefundMsg: refund}, wantErr: errors.ErrMsg},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			msg, err := tc.tx.GetMsg()
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, msg)
			}
		})
	}
}

func TestNewTx(t *testing.T) {
	msg := &token.TransferMsg{
		Source:      weavetest.NewCondition().Address(),
		Destination: weavetest.NewCondition().Address(),
		Amount:      5,
	}
	tx, err := NewTx(msg)
	require.NoError(t, err)
	assert.Equal(t, msg, tx.TokenTransferMsg)

	_, err = NewTx(&weavetest.Msg{RoutePath: "foo/bar"})
	assert.True(t, errors.ErrMsg.Is(err))
}

func TestSignedTxEncoding(t *testing.T) {
	key := crypto.GenPrivKeyEd25519()
	tx, err := NewTx(&escrow.TakeMsg{
		Taker: key.PublicKey().Address(),
		Maker: weavetest.NewCondition().Address(),
		Seed:  77,
		MintA: weavetest.NewCondition().Address(),
		MintB: weavetest.NewCondition().Address(),
	})
	require.NoError(t, err)

	unsigned, err := tx.GetSignBytes()
	require.NoError(t, err)
	require.NoError(t, tx.Sign(key, "escrow-test", 3))
	signed, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, unsigned, signed, "signatures are not signed over")

	raw, err := tx.Marshal()
	require.NoError(t, err)
	decoded, err := DecodeTx(raw)
	require.NoError(t, err)
	assert.Equal(t, tx, decoded)

	stx := decoded.(sigs.SignedTx)
	require.Len(t, stx.GetSignatures(), 1)
	assert.Equal(t, int64(3), stx.GetSignatures()[0].Sequence)

	_, err = DecodeTx([]byte{0xff})
	assert.True(t, errors.ErrInput.Is(err))
	_, err = DecodeTx(raw[:len(raw)-1])
	assert.True(t, errors.ErrInput.Is(err))
}
