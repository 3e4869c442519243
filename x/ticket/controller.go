package ticket

import (
	"github.com/goldtix/registry"
	"github.com/goldtix/registry/errors"
	"github.com/goldtix/registry/orm"
)

// TicketDetails carries the immutable metadata of a ticket to be issued.
type TicketDetails struct {
	Name    string
	Adn     int64
	Points  int64
	Payload []byte
}

// Controller owns the ticket ledger state and implements every read and
// mutation on it. Mutations stage their writes in a cache-wrap and commit
// only on full success, so a failed operation never leaves partial state
// behind. A single controller must not be used concurrently; the guard
// turns re-entrant mutations into errors rather than deadlocks.
type Controller struct {
	tickets   orm.ModelBucket
	balances  orm.ModelBucket
	operators orm.ModelBucket
	seq       orm.Sequence
	receivers *ReceiverRegistry
	guard     guard
}

// NewController returns a controller using the given receiver registry to
// resolve safe transfer hooks. A nil registry means no address is
// contract-capable.
func NewController(receivers *ReceiverRegistry) *Controller {
	if receivers == nil {
		receivers = NewReceiverRegistry()
	}
	tickets := newTicketBucket()
	return &Controller{
		tickets:   tickets,
		balances:  newBalanceBucket(),
		operators: newOperatorBucket(),
		seq:       tickets.Sequence("id"),
		receivers: receivers,
	}
}

// BalanceOf returns the number of tickets held by an address. An address
// that never held a ticket has balance zero.
func (c *Controller) BalanceOf(db registry.ReadOnlyKVStore, addr registry.Address) (int64, error) {
	if err := addr.Validate(); err != nil {
		return 0, errors.Wrap(errors.ErrInput, "address")
	}
	var b Balance
	switch err := c.balances.One(db, addr, &b); {
	case err == nil:
		return b.Count, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// OwnerOf returns the owner of a ticket. Asking for a ticket that was
// never issued fails with not found.
func (c *Controller) OwnerOf(db registry.ReadOnlyKVStore, id int64) (registry.Address, error) {
	var t Ticket
	if err := c.tickets.One(db, ticketKey(id), &t); err != nil {
		return nil, errors.Wrapf(err, "ticket %d", id)
	}
	return t.Owner, nil
}

// TicketInfo returns the full ticket record, metadata included.
func (c *Controller) TicketInfo(db registry.ReadOnlyKVStore, id int64) (*Ticket, error) {
	var t Ticket
	if err := c.tickets.One(db, ticketKey(id), &t); err != nil {
		return nil, errors.Wrapf(err, "ticket %d", id)
	}
	return &t, nil
}

// GetApproved returns the approved delegate for a ticket, or an empty
// address when there is none. It does not fail on unknown tickets, an
// unissued ticket simply has no delegate.
func (c *Controller) GetApproved(db registry.ReadOnlyKVStore, id int64) (registry.Address, error) {
	var t Ticket
	switch err := c.tickets.One(db, ticketKey(id), &t); {
	case err == nil:
		return t.Approved, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

// IsOperator returns whether operator was granted blanket control over all
// of owner's tickets.
func (c *Controller) IsOperator(db registry.ReadOnlyKVStore, owner, operator registry.Address) (bool, error) {
	if owner.IsEmpty() || operator.IsEmpty() {
		return false, nil
	}
	var g OperatorGrant
	switch err := c.operators.One(db, operatorKey(owner, operator), &g); {
	case err == nil:
		return g.Approved, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// TotalIssued returns the highest ticket id ever issued. Ids are assigned
// sequentially starting at one and never reused.
func (c *Controller) TotalIssued(db registry.ReadOnlyKVStore) (int64, error) {
	total, _, err := c.seq.Latest(db)
	if err != nil {
		return 0, errors.Wrap(err, "sequence")
	}
	return total, nil
}

// Issue mints a new ticket to owner and returns its id. Metadata is fixed
// for the lifetime of the ticket.
func (c *Controller) Issue(db registry.CacheableKVStore, owner registry.Address, details TicketDetails) (int64, []registry.Event, error) {
	if err := c.guard.acquire(); err != nil {
		return 0, nil, err
	}
	defer c.guard.release()

	cache := db.CacheWrap()
	id, events, err := c.issue(cache, owner, details)
	if err != nil {
		cache.Discard()
		return 0, nil, err
	}
	if err := cache.Write(); err != nil {
		return 0, nil, errors.Wrap(err, "cannot commit")
	}
	return id, events, nil
}

func (c *Controller) issue(db registry.KVStore, owner registry.Address, details TicketDetails) (int64, []registry.Event, error) {
	if err := owner.Validate(); err != nil {
		return 0, nil, errors.Wrap(errors.ErrInput, "owner")
	}
	id, err := c.seq.NextInt(db)
	if err != nil {
		return 0, nil, errors.Wrap(err, "sequence")
	}
	t := Ticket{
		Name:    details.Name,
		Adn:     details.Adn,
		Points:  details.Points,
		Payload: details.Payload,
		Owner:   owner,
	}
	if err := c.tickets.Put(db, ticketKey(id), &t); err != nil {
		return 0, nil, errors.Wrap(err, "ticket")
	}
	if err := c.creditBalance(db, owner); err != nil {
		return 0, nil, err
	}
	return id, []registry.Event{issueEvent(owner, id, details.Name)}, nil
}

// Approve sets the approved delegate for a single ticket, replacing any
// previous delegate. An empty delegate clears the approval. The actor must
// be the owner of the ticket or one of the owner's operators.
func (c *Controller) Approve(db registry.CacheableKVStore, actor, delegate registry.Address, id int64) ([]registry.Event, error) {
	if err := c.guard.acquire(); err != nil {
		return nil, err
	}
	defer c.guard.release()

	cache := db.CacheWrap()
	events, err := c.approve(cache, actor, delegate, id)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot commit")
	}
	return events, nil
}

func (c *Controller) approve(db registry.KVStore, actor, delegate registry.Address, id int64) ([]registry.Event, error) {
	var t Ticket
	if err := c.tickets.One(db, ticketKey(id), &t); err != nil {
		return nil, errors.Wrapf(err, "ticket %d", id)
	}
	if !c.canAdminister(db, actor, t.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not owner or operator")
	}
	t.Approved = delegate
	if err := c.tickets.Put(db, ticketKey(id), &t); err != nil {
		return nil, errors.Wrap(err, "ticket")
	}
	return []registry.Event{approvalEvent(actor, delegate, id)}, nil
}

// SetOperator grants or revokes blanket control for operator over every
// ticket the actor owns, now and in the future. The grant is recorded
// unconditionally, overwriting any previous state for the pair. Granting
// to oneself is allowed and has no practical effect.
func (c *Controller) SetOperator(db registry.CacheableKVStore, actor, operator registry.Address, approved bool) ([]registry.Event, error) {
	if err := c.guard.acquire(); err != nil {
		return nil, err
	}
	defer c.guard.release()

	cache := db.CacheWrap()
	events, err := c.setOperator(cache, actor, operator, approved)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot commit")
	}
	return events, nil
}

func (c *Controller) setOperator(db registry.KVStore, actor, operator registry.Address, approved bool) ([]registry.Event, error) {
	if err := actor.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrInput, "actor")
	}
	if err := operator.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrInput, "operator")
	}
	key := operatorKey(actor, operator)
	if approved {
		if err := c.operators.Put(db, key, &OperatorGrant{Approved: true}); err != nil {
			return nil, errors.Wrap(err, "grant")
		}
	} else {
		switch err := c.operators.Delete(db, key); {
		case err == nil, errors.ErrNotFound.Is(err):
			// revoking an absent grant is a no-op
		default:
			return nil, errors.Wrap(err, "grant")
		}
	}
	return []registry.Event{approvalForAllEvent(actor, operator, approved)}, nil
}

// Transfer moves a ticket from its recorded owner to another address. The
// actor must be the owner, the ticket's approved delegate, or one of the
// owner's operators. Any per-ticket approval is cleared by the move.
func (c *Controller) Transfer(db registry.CacheableKVStore, actor, from, to registry.Address, id int64) ([]registry.Event, error) {
	if err := c.guard.acquire(); err != nil {
		return nil, err
	}
	defer c.guard.release()

	cache := db.CacheWrap()
	event, err := c.move(cache, actor, from, to, id)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot commit")
	}
	return []registry.Event{event}, nil
}

// SafeTransfer is Transfer followed by a notification of the recipient
// when the recipient is contract-capable. The whole operation, move
// included, is rolled back unless the recipient returns Ack.
func (c *Controller) SafeTransfer(db registry.CacheableKVStore, actor, from, to registry.Address, id int64, data []byte) ([]registry.Event, error) {
	if err := c.guard.acquire(); err != nil {
		return nil, err
	}
	defer c.guard.release()

	cache := db.CacheWrap()
	event, err := c.move(cache, actor, from, to, id)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if recv, ok := c.receivers.Lookup(to); ok {
		ack, err := recv.OnTicketReceived(actor, from, id, data)
		if err != nil {
			cache.Discard()
			return nil, errors.Wrapf(ErrRejected, "receiver %s: %v", to, err)
		}
		if ack != Ack {
			cache.Discard()
			return nil, errors.Wrapf(ErrRejected, "receiver %s returned wrong acknowledgment", to)
		}
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot commit")
	}
	return []registry.Event{event}, nil
}

// BatchTransfer moves several tickets from one owner to one recipient as a
// single atomic unit. If any single move fails, none is applied.
func (c *Controller) BatchTransfer(db registry.CacheableKVStore, actor, from, to registry.Address, ids []int64) ([]registry.Event, error) {
	if err := c.guard.acquire(); err != nil {
		return nil, err
	}
	defer c.guard.release()

	if len(ids) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "ticket ids")
	}
	cache := db.CacheWrap()
	events := make([]registry.Event, 0, len(ids)+1)
	for _, id := range ids {
		event, err := c.move(cache, actor, from, to, id)
		if err != nil {
			cache.Discard()
			return nil, errors.Wrapf(err, "ticket %d", id)
		}
		events = append(events, event)
	}
	events = append(events, transferBatchEvent(from, to, ids))
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot commit")
	}
	return events, nil
}

// move applies a single ownership transition on an already wrapped store.
// The order of the checks is part of the contract: authorization first,
// then the ownership claim, then the destination, then the id range.
func (c *Controller) move(db registry.KVStore, actor, from, to registry.Address, id int64) (registry.Event, error) {
	var event registry.Event

	var t Ticket
	exists := true
	switch err := c.tickets.One(db, ticketKey(id), &t); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		exists = false
	default:
		return event, errors.Wrapf(err, "ticket %d", id)
	}

	// An unissued ticket has no owner, so nobody can pass this check for
	// it and the later range check only refines the error code.
	authorized := exists && !actor.IsEmpty() && (actor.Equals(t.Owner) ||
		(!t.Approved.IsEmpty() && actor.Equals(t.Approved)) ||
		c.canAdminister(db, actor, t.Owner))
	if !authorized {
		return event, errors.Wrap(errors.ErrUnauthorized, "not owner, delegate or operator")
	}

	// The delegation is spent by the move regardless of who triggered it.
	t.Approved = nil

	if !from.Equals(t.Owner) {
		return event, errors.Wrapf(errors.ErrState, "%s is not the owner of ticket %d", from, id)
	}
	if to.IsEmpty() {
		return event, errors.Wrap(errors.ErrInput, "transfer to the null address")
	}
	if err := to.Validate(); err != nil {
		return event, errors.Wrap(errors.ErrInput, "destination")
	}
	total, _, err := c.seq.Latest(db)
	if err != nil {
		return event, errors.Wrap(err, "sequence")
	}
	if id < 1 || id > total {
		return event, errors.Wrapf(errors.ErrNotFound, "ticket %d", id)
	}

	if err := c.debitBalance(db, from); err != nil {
		return event, err
	}
	if err := c.creditBalance(db, to); err != nil {
		return event, err
	}
	t.Owner = to
	if err := c.tickets.Put(db, ticketKey(id), &t); err != nil {
		return event, errors.Wrap(err, "ticket")
	}
	return transferEvent(from, to, id), nil
}

// canAdminister reports whether actor may act on behalf of owner: either
// as the owner itself or as one of the owner's operators.
func (c *Controller) canAdminister(db registry.ReadOnlyKVStore, actor, owner registry.Address) bool {
	if actor.IsEmpty() || owner.IsEmpty() {
		return false
	}
	if actor.Equals(owner) {
		return true
	}
	ok, err := c.IsOperator(db, owner, actor)
	return err == nil && ok
}

func (c *Controller) creditBalance(db registry.KVStore, addr registry.Address) error {
	var b Balance
	switch err := c.balances.One(db, addr, &b); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return errors.Wrap(err, "balance")
	}
	b.Count++
	return errors.Wrap(c.balances.Put(db, addr, &b), "balance")
}

func (c *Controller) debitBalance(db registry.KVStore, addr registry.Address) error {
	var b Balance
	if err := c.balances.One(db, addr, &b); err != nil {
		return errors.Wrap(err, "balance")
	}
	b.Count--
	if b.Count == 0 {
		return errors.Wrap(c.balances.Delete(db, addr), "balance")
	}
	return errors.Wrap(c.balances.Put(db, addr, &b), "balance")
}
