package app

import (
	"context"
	"sync"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Ledger executes transactions one at a time against a committing store.
// Conflicting transactions are totally ordered: the second one observes the
// state left by the first.
type Ledger struct {
	mu      sync.Mutex
	store   *CommitStore
	handler weave.Handler
	decoder weave.TxDecoder
	logger  log.Logger
	queries weave.QueryRouter
	chainID string
	height  int64
}

// NewLedger loads the latest state of db. A nil logger disables logging.
func NewLedger(db weave.CommitKVStore, handler weave.Handler, decoder weave.TxDecoder, logger log.Logger) (*Ledger, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	cs, err := NewCommitStore(db)
	if err != nil {
		return nil, err
	}
	chainID, err := loadChainID(cs.DeliverStore())
	if err != nil {
		return nil, err
	}
	info, err := cs.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return &Ledger{
		store:   cs,
		handler: handler,
		decoder: decoder,
		queries: weave.NewQueryRouter(),
		logger:  logger.With("module", "ledger"),
		chainID: chainID,
		height:  info.Version,
	}, nil
}

// ChainID returns the chain id set at genesis, empty before InitChain.
func (l *Ledger) ChainID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.chainID
}

// InitChain saves the chain id and loads the genesis state. It can be
// called only once in the lifetime of a store.
func (l *Ledger) InitChain(gen *Genesis, init weave.Initializer) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for %s", l.chainID)
	}
	cache := l.store.DeliverStore().CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	if err := init.FromGenesis(gen.AppState, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "genesis")
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "genesis")
	}
	l.chainID = gen.ChainID
	l.logger.Info("genesis loaded", "chain_id", gen.ChainID)
	return nil
}

// CheckTx decodes and checks a transaction against the check state.
func (l *Ledger) CheckTx(bz []byte) (*weave.CheckResult, error) {
	tx, err := l.decode(bz)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	ctx, err := l.context("check_tx")
	if err != nil {
		return nil, err
	}
	return l.handler.Check(ctx, l.store.CheckStore(), tx)
}

// DeliverTx decodes and executes a transaction.
func (l *Ledger) DeliverTx(bz []byte) (*weave.DeliverResult, error) {
	tx, err := l.decode(bz)
	if err != nil {
		return nil, err
	}
	return l.Deliver(tx)
}

// Deliver executes an already decoded transaction.
func (l *Ledger) Deliver(tx weave.Tx) (*weave.DeliverResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ctx, err := l.context("deliver_tx")
	if err != nil {
		return nil, err
	}
	return l.handler.Deliver(ctx, l.store.DeliverStore(), tx)
}

// View calls fn with the delivered, not yet committed state. fn must not
// keep db after returning.
func (l *Ledger) View(fn func(db weave.ReadOnlyKVStore) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(l.store.DeliverStore())
}

// RegisterQueries adds query routes served by Query.
func (l *Ledger) RegisterQueries(qr ...weave.QueryRegister) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queries.RegisterAll(qr...)
}

// Query answers a lookup on the delivered state.
func (l *Ledger) Query(path, mod string, data []byte) ([]weave.Model, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	h := l.queries.Handler(path)
	if h == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "query path %q", path)
	}
	return h.Query(l.store.DeliverStore(), mod, data)
}

// Commit seals the delivered state and starts the next block.
func (l *Ledger) Commit() (weave.CommitID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id, err := l.store.Commit()
	if err != nil {
		return id, err
	}
	l.height = id.Version
	l.logger.Info("commit", "height", id.Version, "hash", id.Hash)
	return id, nil
}

func (l *Ledger) context(call string) (weave.Context, error) {
	if l.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "genesis not loaded")
	}
	ctx := weave.WithChainID(context.Background(), l.chainID)
	ctx = weave.WithHeight(ctx, l.height+1)
	ctx = weave.WithLogger(ctx, l.logger)
	return weave.WithLogInfo(ctx, "call", call), nil
}

func (l *Ledger) decode(bz []byte) (tx weave.Tx, err error) {
	defer errors.Recover(&err)
	return l.decoder(bz)
}
