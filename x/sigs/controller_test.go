package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/crypto"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signedTx is a signed transaction whose sign bytes are the payload of its
// message.
type signedTx struct {
	weavetest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)

func newSignedTx(payload []byte) *signedTx {
	return &signedTx{Tx: weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/sign", Serialized: payload}}}
}

func (tx *signedTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *signedTx) GetSignBytes() ([]byte, error) {
	return tx.Msg.Marshal()
}

func TestSignBytes(t *testing.T) {
	const chainID = "test-sign-bytes"
	bz := []byte("foobar")

	c1, err := BuildSignBytes(bz, chainID, 17)
	require.NoError(t, err)
	assert.Len(t, c1, 64)

	// sign bytes change on payload, chain id and sequence
	for name, fn := range map[string]func() ([]byte, error){
		"payload":  func() ([]byte, error) { return BuildSignBytes([]byte("blast"), chainID, 17) },
		"chain id": func() ([]byte, error) { return BuildSignBytes(bz, chainID+"2", 17) },
		"sequence": func() ([]byte, error) { return BuildSignBytes(bz, chainID, 18) },
	} {
		other, err := fn()
		require.NoError(t, err, name)
		assert.NotEqual(t, c1, other, name)
	}

	_, err = BuildSignBytes(bz, chainID, -1)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = BuildSignBytes(bz, "no", 1)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestVerifySignature(t *testing.T) {
	kv := store.MemStore()
	priv := crypto.GenPrivKeyEd25519()
	perm := priv.PublicKey().Condition()

	const chainID = "emo-music-2345"
	tx := newSignedTx([]byte("my special valentine"))
	bz, err := tx.GetSignBytes()
	require.NoError(t, err)

	sign := func(seq int64) *StdSignature {
		sig, err := SignTx(priv, tx, chainID, seq)
		require.NoError(t, err)
		return sig
	}
	sig0, sig1, sig2, sig13 := sign(0), sign(1), sign(2), sign(13)

	// signing is deterministic
	assert.Equal(t, sig2, sign(2))

	// the first one must start at zero
	_, err = VerifySignature(kv, sig1, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	_, err = VerifySignature(kv, new(StdSignature), bz, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	got, err := VerifySignature(kv, sig0, bz, chainID)
	require.NoError(t, err)
	assert.Equal(t, perm, got)
	got, err = VerifySignature(kv, sig1, bz, chainID)
	require.NoError(t, err)
	assert.Equal(t, perm, got)

	n, err := NextNonce(kv, perm.Address())
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	// replays and jumps fail
	_, err = VerifySignature(kv, sig1, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = VerifySignature(kv, sig13, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	// another chain does not match
	_, err = VerifySignature(kv, sig2, bz, "metal-chain")
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// a tampered signature does not match
	bad := *sig2
	bad.Signature = &crypto.Signature{Ed25519: append([]byte{}, sig2.Signature.Ed25519...)}
	bad.Signature.Ed25519[0] ^= 0xFF
	_, err = VerifySignature(kv, &bad, bz, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	_, err = VerifySignature(kv, sig2, bz, chainID)
	assert.NoError(t, err)
}

func TestVerifyTxSignatures(t *testing.T) {
	kv := store.MemStore()
	priv := crypto.GenPrivKeyEd25519()
	priv2 := crypto.GenPrivKeyEd25519()

	const chainID = "hot_summer_days"
	tx := newSignedTx([]byte("ice cream"))

	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig2, err := SignTx(priv2, tx, chainID, 0)
	require.NoError(t, err)

	tx.Signatures = []*StdSignature{sig, sig2}
	conds, err := VerifyTxSignatures(kv, tx, chainID)
	require.NoError(t, err)
	assert.Equal(t, []weave.Condition{priv.PublicKey().Condition(), priv2.PublicKey().Condition()}, conds)

	// a second run is a replay
	_, err = VerifyTxSignatures(kv, tx, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	tx.Signatures = nil
	conds, err = VerifyTxSignatures(kv, tx, chainID)
	require.NoError(t, err)
	assert.Empty(t, conds)
}

func TestAuthenticate(t *testing.T) {
	a := weavetest.NewCondition()
	b := weavetest.NewCondition()
	ctx := withSigners(context.Background(), []weave.Condition{a})

	var auth Authenticate
	assert.True(t, auth.HasAddress(ctx, a.Address()))
	assert.False(t, auth.HasAddress(ctx, b.Address()))
	assert.Empty(t, auth.GetConditions(context.Background()))
}

func TestUserSequence(t *testing.T) {
	u := UserData{Pubkey: crypto.GenPrivKeyEd25519().PublicKey()}
	require.NoError(t, u.CheckAndIncrementSequence(0))
	assert.True(t, ErrInvalidSequence.Is(u.CheckAndIncrementSequence(0)))

	u.Sequence = maxSequenceValue
	assert.True(t, errors.ErrOverflow.Is(u.CheckAndIncrementSequence(maxSequenceValue)))

	bz, err := u.Marshal()
	require.NoError(t, err)
	var got UserData
	require.NoError(t, got.Unmarshal(bz))
	assert.Equal(t, u, got)
}
