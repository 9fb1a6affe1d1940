package escrow

import (
	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/coin"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/x"
	"github.com/iov-one/weave-escrow/x/cash"
	"github.com/iov-one/weave-escrow/x/token"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator, tokens token.Controller, bank cash.Controller) {
	r.Handle(&MakeMsg{}, NewMakeHandler(auth, tokens, bank))
	r.Handle(&TakeMsg{}, NewTakeHandler(auth, tokens, bank))
	r.Handle(&RefundMsg{}, NewRefundHandler(auth, tokens, bank))
}

// RegisterQuery exposes open escrows under /escrows and /escrows/maker, and
// the outcome of closed ones under /escrows/outcomes.
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("escrows", qr)
	NewOutcomeBucket().Register("escrows/outcomes", qr)
}

// MakeHandler opens escrows.
type MakeHandler struct {
	auth     x.Authenticator
	tokens   token.Controller
	bank     cash.Controller
	bucket   Bucket
	outcomes OutcomeBucket
}

var _ weave.Handler = MakeHandler{}

func NewMakeHandler(auth x.Authenticator, tokens token.Controller, bank cash.Controller) MakeHandler {
	return MakeHandler{
		auth:     auth,
		tokens:   tokens,
		bank:     bank,
		bucket:   NewBucket(),
		outcomes: NewOutcomeBucket(),
	}
}

// Check verifies every precondition of Make without writing anything.
func (h MakeHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

// Deliver locks the maker deposit and amount of mint a in a new vault and
// stores the escrow record. The record address is returned as data.
func (h MakeHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !coin.IsEmpty(conf.RecordDeposit) {
		if err := h.bank.MoveCoins(db, msg.Maker, escrow.Address, *conf.RecordDeposit); err != nil {
			return nil, errors.Wrap(err, "record deposit")
		}
	}
	if _, err := h.tokens.CreateHolding(db, msg.Maker, msg.MintA, escrow.Address); err != nil {
		return nil, errors.Wrap(err, "create vault")
	}
	makerAtaA := pick(msg.MakerAtaA, token.HoldingAddress(msg.MintA, msg.Maker))
	if err := h.tokens.Transfer(db, makerAtaA, escrow.Vault, msg.Amount, msg.Maker); err != nil {
		return nil, errors.Wrap(err, "deposit to vault")
	}
	if err := h.bucket.Put(db, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}

	weave.GetLogger(ctx).Debug("escrow made", "escrow", escrow.Address, "amount", msg.Amount, "receive", msg.Receive)
	return &weave.DeliverResult{
		Data: escrow.Address,
		Tags: []weave.Tag{{Key: "escrow", Value: escrow.Address.String()}, {Key: "escrow.state", Value: Created.String()}},
	}, nil
}

func (h MakeHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*MakeMsg, *Escrow, error) {
	var msg MakeMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Maker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}
	if _, err := h.tokens.Mint(db, msg.MintA); err != nil {
		return nil, nil, errors.Wrap(err, "mint a")
	}
	if _, err := h.tokens.Mint(db, msg.MintB); err != nil {
		return nil, nil, errors.Wrap(err, "mint b")
	}

	record := RecordAddress(msg.Maker, msg.Seed)
	if len(msg.Escrow) != 0 && !msg.Escrow.Equals(record) {
		return nil, nil, errors.Wrap(errors.ErrMismatch, "escrow address not derived from maker and seed")
	}
	vault := VaultAddress(msg.MintA, record)
	if len(msg.Vault) != 0 && !msg.Vault.Equals(vault) {
		return nil, nil, errors.Wrap(errors.ErrMismatch, "vault address not derived from mint a and escrow")
	}

	if ok, err := h.bucket.Has(db, record); err != nil {
		return nil, nil, err
	} else if ok {
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "escrow %s is open", record)
	}
	if ok, err := h.outcomes.Has(db, record); err != nil {
		return nil, nil, err
	} else if ok {
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "escrow %s was closed", record)
	}
	if _, err := h.tokens.Holding(db, vault); err == nil {
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "vault %s", vault)
	} else if !errors.ErrNotFound.Is(err) {
		return nil, nil, err
	}

	src, err := h.tokens.Holding(db, pick(msg.MakerAtaA, token.HoldingAddress(msg.MintA, msg.Maker)))
	if err != nil {
		return nil, nil, errors.Wrap(err, "maker ata a")
	}
	if !src.Owner.Equals(msg.Maker) || !src.Mint.Equals(msg.MintA) {
		return nil, nil, errors.Wrap(errors.ErrMismatch, "maker ata a must be a mint a holding of the maker")
	}
	if src.Amount < msg.Amount {
		return nil, nil, errors.Wrapf(errors.ErrAmount, "maker holds %d, offers %d", src.Amount, msg.Amount)
	}

	escrow := &Escrow{
		Metadata: &weave.Metadata{Schema: 1},
		Maker:    msg.Maker,
		Seed:     msg.Seed,
		MintA:    msg.MintA,
		MintB:    msg.MintB,
		Receive:  msg.Receive,
		Vault:    vault,
		Address:  record,
	}
	return &msg, escrow, nil
}

// TakeHandler settles escrows.
type TakeHandler struct {
	auth     x.Authenticator
	tokens   token.Controller
	bank     cash.Controller
	bucket   Bucket
	outcomes OutcomeBucket
}

var _ weave.Handler = TakeHandler{}

func NewTakeHandler(auth x.Authenticator, tokens token.Controller, bank cash.Controller) TakeHandler {
	return TakeHandler{
		auth:     auth,
		tokens:   tokens,
		bank:     bank,
		bucket:   NewBucket(),
		outcomes: NewOutcomeBucket(),
	}
}

// Check verifies every precondition of Take without writing anything.
func (h TakeHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

// Deliver pays the maker in mint b, empties the vault to the taker and
// closes the escrow.
func (h TakeHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	takerAtaA, err := h.tokens.EnsureHolding(db, msg.Taker, escrow.MintA, msg.Taker)
	if err != nil {
		return nil, errors.Wrap(err, "taker ata a")
	}
	makerAtaB, err := h.tokens.EnsureHolding(db, msg.Taker, escrow.MintB, escrow.Maker)
	if err != nil {
		return nil, errors.Wrap(err, "maker ata b")
	}
	takerAtaB := pick(msg.TakerAtaB, token.HoldingAddress(escrow.MintB, msg.Taker))
	if err := h.tokens.Transfer(db, takerAtaB, makerAtaB.Address, escrow.Receive, msg.Taker); err != nil {
		return nil, errors.Wrap(err, "pay maker")
	}
	if err := closeEscrow(db, h.tokens, h.bank, h.bucket, h.outcomes, escrow, takerAtaA.Address, msg.Taker, Settled); err != nil {
		return nil, err
	}

	weave.GetLogger(ctx).Debug("escrow settled", "escrow", escrow.Address, "taker", msg.Taker)
	return &weave.DeliverResult{
		Data: escrow.Address,
		Tags: []weave.Tag{{Key: "escrow", Value: escrow.Address.String()}, {Key: "escrow.state", Value: Settled.String()}},
	}, nil
}

func (h TakeHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*TakeMsg, *Escrow, error) {
	var msg TakeMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Taker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "taker signature missing")
	}

	escrow, err := loadEscrow(db, h.bucket, msg.Maker, msg.Seed, msg.Escrow)
	if err != nil {
		return nil, nil, err
	}
	if !escrow.MintA.Equals(msg.MintA) || !escrow.MintB.Equals(msg.MintB) {
		return nil, nil, errors.Wrap(errors.ErrMismatch, "mints do not match the escrow")
	}
	if len(msg.Vault) != 0 && !msg.Vault.Equals(escrow.Vault) {
		return nil, nil, errors.Wrap(errors.ErrMismatch, "vault does not match the escrow")
	}
	if len(msg.TakerAtaA) != 0 && !msg.TakerAtaA.Equals(token.HoldingAddress(escrow.MintA, msg.Taker)) {
		return nil, nil, errors.Wrap(errors.ErrMismatch, "taker ata a is not the mint a holding of the taker")
	}
	if len(msg.MakerAtaB) != 0 && !msg.MakerAtaB.Equals(token.HoldingAddress(escrow.MintB, escrow.Maker)) {
		return nil, nil, errors.Wrap(errors.ErrMismatch, "maker ata b is not the mint b holding of the maker")
	}

	src, err := h.tokens.Holding(db, pick(msg.TakerAtaB, token.HoldingAddress(escrow.MintB, msg.Taker)))
	if err != nil {
		return nil, nil, errors.Wrap(err, "taker ata b")
	}
	if !src.Owner.Equals(msg.Taker) || !src.Mint.Equals(escrow.MintB) {
		return nil, nil, errors.Wrap(errors.ErrMismatch, "taker ata b must be a mint b holding of the taker")
	}
	if src.Amount < escrow.Receive {
		return nil, nil, errors.Wrapf(errors.ErrAmount, "taker holds %d, escrow wants %d", src.Amount, escrow.Receive)
	}
	return &msg, escrow, nil
}

// RefundHandler cancels escrows.
type RefundHandler struct {
	auth     x.Authenticator
	tokens   token.Controller
	bank     cash.Controller
	bucket   Bucket
	outcomes OutcomeBucket
}

var _ weave.Handler = RefundHandler{}

func NewRefundHandler(auth x.Authenticator, tokens token.Controller, bank cash.Controller) RefundHandler {
	return RefundHandler{
		auth:     auth,
		tokens:   tokens,
		bank:     bank,
		bucket:   NewBucket(),
		outcomes: NewOutcomeBucket(),
	}
}

// Check verifies every precondition of Refund without writing anything.
func (h RefundHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

// Deliver returns the vault content and all deposits to the maker and
// closes the escrow.
func (h RefundHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	makerAtaA, err := h.tokens.EnsureHolding(db, msg.Maker, escrow.MintA, escrow.Maker)
	if err != nil {
		return nil, errors.Wrap(err, "maker ata a")
	}
	if err := closeEscrow(db, h.tokens, h.bank, h.bucket, h.outcomes, escrow, makerAtaA.Address, msg.Maker, Cancelled); err != nil {
		return nil, err
	}

	weave.GetLogger(ctx).Debug("escrow refunded", "escrow", escrow.Address)
	return &weave.DeliverResult{
		Data: escrow.Address,
		Tags: []weave.Tag{{Key: "escrow", Value: escrow.Address.String()}, {Key: "escrow.state", Value: Cancelled.String()}},
	}, nil
}

func (h RefundHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*RefundMsg, *Escrow, error) {
	var msg RefundMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Maker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}

	escrow, err := loadEscrow(db, h.bucket, msg.Maker, msg.Seed, msg.Escrow)
	if err != nil {
		return nil, nil, err
	}
	if !escrow.Maker.Equals(msg.Maker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the maker may refund")
	}
	if !escrow.MintA.Equals(msg.MintA) {
		return nil, nil, errors.Wrap(errors.ErrMismatch, "mint a does not match the escrow")
	}
	if len(msg.Vault) != 0 && !msg.Vault.Equals(escrow.Vault) {
		return nil, nil, errors.Wrap(errors.ErrMismatch, "vault does not match the escrow")
	}
	if len(msg.MakerAtaA) != 0 && !msg.MakerAtaA.Equals(token.HoldingAddress(escrow.MintA, escrow.Maker)) {
		return nil, nil, errors.Wrap(errors.ErrMismatch, "maker ata a is not the mint a holding of the maker")
	}
	return &msg, escrow, nil
}

// loadEscrow returns the open escrow of maker and seed. given, when set,
// must be the derived record address.
func loadEscrow(db weave.ReadOnlyKVStore, b Bucket, maker weave.Address, seed uint64, given weave.Address) (*Escrow, error) {
	record := RecordAddress(maker, seed)
	if len(given) != 0 && !given.Equals(record) {
		return nil, errors.Wrap(errors.ErrMismatch, "escrow address not derived from maker and seed")
	}
	escrow, err := b.Get(db, record)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load escrow from the store")
	}
	if escrow == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "escrow %s", record)
	}
	return escrow, nil
}

// closeEscrow moves the whole vault to dest, closes the vault and the
// record with all deposits going to the maker, and stores the outcome.
func closeEscrow(
	db weave.KVStore,
	tokens token.Controller,
	bank cash.Controller,
	bucket Bucket,
	outcomes OutcomeBucket,
	escrow *Escrow,
	dest weave.Address,
	closedBy weave.Address,
	state State,
) error {
	vault, err := tokens.Holding(db, escrow.Vault)
	if err != nil {
		return errors.Wrap(err, "vault")
	}
	if vault.Amount > 0 {
		if err := tokens.Transfer(db, vault.Address, dest, vault.Amount, escrow.Address); err != nil {
			return errors.Wrap(err, "release vault")
		}
	}
	if err := tokens.CloseHolding(db, vault.Address, escrow.Address, escrow.Maker); err != nil {
		return errors.Wrap(err, "close vault")
	}
	if err := bucket.Delete(db, escrow.Address); err != nil {
		return errors.Wrap(err, "delete escrow")
	}
	if err := cash.Sweep(db, bank, escrow.Address, escrow.Maker); err != nil {
		return errors.Wrap(err, "release record deposit")
	}
	return outcomes.Put(db, escrow.Address, &Outcome{State: state, ClosedBy: closedBy})
}
