package utils

import (
	"context"
	"testing"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionTagger(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "escrow/refund"}}
	existing := weave.Tag{Key: "escrow", Value: "ABCD"}

	h := &weavetest.Handler{DeliverResult: weave.DeliverResult{Tags: []weave.Tag{existing}}}
	res, err := NewActionTagger().Deliver(ctx, db, tx, h)
	require.NoError(t, err)
	assert.Equal(t, []weave.Tag{existing, {Key: ActionKey, Value: "escrow/refund"}}, res.Tags)

	failing := &weavetest.Handler{DeliverErr: errors.ErrNotFound}
	_, err = NewActionTagger().Deliver(ctx, db, tx, failing)
	assert.True(t, errors.ErrNotFound.Is(err))

	broken := &weavetest.Tx{Err: errors.ErrMsg}
	_, err = NewActionTagger().Deliver(ctx, db, broken, h)
	assert.True(t, errors.ErrMsg.Is(err))
	assert.Equal(t, 1, h.DeliverCallCount())
}
