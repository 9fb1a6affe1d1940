package token

import (
	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&CreateMintMsg{}, CreateMintHandler{auth: auth, ctrl: ctrl})
	r.Handle(&MintToMsg{}, MintToHandler{auth: auth, ctrl: ctrl})
	r.Handle(&CreateHoldingMsg{}, CreateHoldingHandler{auth: auth, ctrl: ctrl})
	r.Handle(&TransferMsg{}, TransferHandler{auth: auth, ctrl: ctrl})
	r.Handle(&CloseHoldingMsg{}, CloseHoldingHandler{auth: auth, ctrl: ctrl})
}

// RegisterQuery exposes mints and holdings.
func RegisterQuery(qr weave.QueryRouter) {
	NewMintBucket().Register("mints", qr)
	NewHoldingBucket().Register("holdings", qr)
}

// CreateMintHandler registers new assets.
type CreateMintHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = CreateMintHandler{}

func (h CreateMintHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

// Deliver creates the mint and returns its address.
func (h CreateMintHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	m, err := h.ctrl.CreateMint(db, msg.Authority, msg.Name, msg.Decimals)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: m.Address}, nil
}

func (h CreateMintHandler) validate(ctx weave.Context, tx weave.Tx) (*CreateMintMsg, error) {
	var msg CreateMintMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "authority signature missing")
	}
	return &msg, nil
}

// MintToHandler issues new units. The signer must be the mint authority.
type MintToHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = MintToHandler{}

func (h MintToHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h MintToHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, mint, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.MintTo(db, msg.Mint, msg.Destination, msg.Amount, mint.Authority); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h MintToHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*MintToMsg, *Mint, error) {
	var msg MintToMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	mint, err := h.ctrl.Mint(db, msg.Mint)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, mint.Authority) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "mint authority signature missing")
	}
	return &msg, mint, nil
}

// CreateHoldingHandler creates holdings for any owner at the expense of the
// signing payer.
type CreateHoldingHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = CreateHoldingHandler{}

func (h CreateHoldingHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

// Deliver creates the holding and returns its address.
func (h CreateHoldingHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	holding, err := h.ctrl.CreateHolding(db, msg.Payer, msg.Mint, msg.Owner)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: holding.Address}, nil
}

func (h CreateHoldingHandler) validate(ctx weave.Context, tx weave.Tx) (*CreateHoldingMsg, error) {
	var msg CreateHoldingMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
	}
	return &msg, nil
}

// TransferHandler moves units between holdings.
type TransferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h TransferHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, src, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(db, msg.Source, msg.Destination, msg.Amount, src.Owner); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h TransferHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*TransferMsg, *Holding, error) {
	var msg TransferMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	src, err := h.ctrl.Holding(db, msg.Source)
	if err != nil {
		return nil, nil, errors.Wrap(err, "source")
	}
	if !h.auth.HasAddress(ctx, src.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &msg, src, nil
}

// CloseHoldingHandler deletes empty holdings.
type CloseHoldingHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = CloseHoldingHandler{}

func (h CloseHoldingHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h CloseHoldingHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, holding, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.CloseHolding(db, msg.Holding, holding.Owner, msg.Destination); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h CloseHoldingHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*CloseHoldingMsg, *Holding, error) {
	var msg CloseHoldingMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	holding, err := h.ctrl.Holding(db, msg.Holding)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, holding.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &msg, holding, nil
}
