package app

import (
	"github.com/goldtix/registry"
	"github.com/goldtix/registry/errors"
	"github.com/goldtix/registry/eventlog"
	"github.com/goldtix/registry/store"
	"github.com/goldtix/registry/x/ticket"
)

// Ticketer is the assembled ticket ledger. It owns the state store, the
// message router, and optionally an event sink recording the history of
// every delivered transaction.
type Ticketer struct {
	db        store.CacheableKVStore
	router    *Router
	control   *ticket.Controller
	receivers *ticket.ReceiverRegistry
	issuer    registry.Address
	chainID   string
	sink      *eventlog.Store
}

// NewTicketer wires the ledger together. The issuer is the only address
// allowed to mint tickets after genesis. A nil sink disables event
// recording.
func NewTicketer(db store.CacheableKVStore, issuer registry.Address, sink *eventlog.Store) *Ticketer {
	receivers := ticket.NewReceiverRegistry()
	control := ticket.NewController(receivers)
	router := NewRouter()
	ticket.RegisterRoutes(router, Authenticator{}, issuer, control)
	return &Ticketer{
		db:        db,
		router:    router,
		control:   control,
		receivers: receivers,
		issuer:    issuer,
		sink:      sink,
	}
}

// InitChain applies the genesis configuration. It must be called exactly
// once, before any transaction is processed.
func (t *Ticketer) InitChain(opts registry.Options) error {
	var chainID string
	if err := opts.ReadOptions("chain_id", &chainID); err != nil {
		return errors.Wrap(err, "chain id")
	}
	if !registry.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id: %q", chainID)
	}
	t.chainID = chainID

	ini := ticket.Initializer{Control: t.control}
	if err := ini.FromGenesis(opts, t.db); err != nil {
		return errors.Wrap(err, "genesis")
	}
	return nil
}

// ChainID returns the chain this ledger was initialized for.
func (t *Ticketer) ChainID() string {
	return t.chainID
}

// Context returns a request context bound to this chain.
func (t *Ticketer) Context(ctx registry.Context) registry.Context {
	return registry.WithChainID(ctx, t.chainID)
}

// CheckTx validates a transaction against the current state without
// changing it.
func (t *Ticketer) CheckTx(ctx registry.Context, tx registry.Tx) (*registry.CheckResult, error) {
	cache := t.db.CacheWrap()
	defer cache.Discard()
	return t.router.Check(ctx, cache, tx)
}

// DeliverTx executes a transaction. All writes are committed as one unit
// on success and discarded entirely on failure. On success the emitted
// events are recorded in the sink, if one is configured.
func (t *Ticketer) DeliverTx(ctx registry.Context, tx registry.Tx) (*registry.DeliverResult, error) {
	cache := t.db.CacheWrap()
	res, err := t.router.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot commit")
	}
	if t.sink != nil {
		if _, err := t.sink.Record(res.Events); err != nil {
			return res, errors.Wrap(err, "record events")
		}
	}
	return res, nil
}

// Control exposes the ticket controller for read-only queries.
func (t *Ticketer) Control() *ticket.Controller {
	return t.control
}

// Receivers exposes the receiver registry so the host environment can
// register contract-capable addresses.
func (t *Ticketer) Receivers() *ticket.ReceiverRegistry {
	return t.receivers
}

// Store exposes a read-only view of the committed state.
func (t *Ticketer) Store() registry.ReadOnlyKVStore {
	return t.db
}
