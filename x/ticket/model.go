package ticket

import (
	"encoding/json"

	"github.com/goldtix/registry"
	"github.com/goldtix/registry/errors"
	"github.com/goldtix/registry/orm"
)

const maxNameLength = 30

// RegistryCondition is the ledger's own identity. Tickets minted at
// genesis without an explicit owner belong to this address.
func RegistryCondition() registry.Condition {
	return registry.NewCondition("ticket", "ledger", []byte("registry"))
}

// RegistryAddr is the address of RegistryCondition.
func RegistryAddr() registry.Address {
	return RegistryCondition().Address()
}

var _ orm.Model = (*Ticket)(nil)

// Ticket is a single non-fungible token. Name, Adn, Points and Payload are
// fixed at issue time. Owner changes on transfer. Approved is the address
// delegated to transfer this one ticket and is cleared on every transfer.
type Ticket struct {
	Name     string           `json:"name"`
	Adn      int64            `json:"adn"`
	Points   int64            `json:"points"`
	Payload  []byte           `json:"payload,omitempty"`
	Owner    registry.Address `json:"owner"`
	Approved registry.Address `json:"approved,omitempty"`
}

func (t *Ticket) Marshal() ([]byte, error) {
	return json.Marshal(t)
}

func (t *Ticket) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, t)
}

func (t *Ticket) Validate() error {
	var errs error
	if t.Name == "" {
		errs = errors.Append(errs, errors.Wrap(errors.ErrEmpty, "name"))
	}
	if len(t.Name) > maxNameLength {
		errs = errors.Append(errs, errors.Wrapf(errors.ErrInput, "name longer than %d characters", maxNameLength))
	}
	if t.Points < 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrInput, "negative points"))
	}
	errs = errors.Append(errs, errors.Wrap(t.Owner.Validate(), "owner"))
	if !t.Approved.IsEmpty() {
		errs = errors.Append(errs, errors.Wrap(t.Approved.Validate(), "approved"))
	}
	return errs
}

var _ orm.Model = (*Balance)(nil)

// Balance counts the tickets held by one address. A zero balance is never
// stored, the entry is deleted instead.
type Balance struct {
	Count int64 `json:"count"`
}

func (b *Balance) Marshal() ([]byte, error) {
	return json.Marshal(b)
}

func (b *Balance) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, b)
}

func (b *Balance) Validate() error {
	if b.Count < 1 {
		return errors.Wrap(errors.ErrModel, "balance must be positive")
	}
	return nil
}

var _ orm.Model = (*OperatorGrant)(nil)

// OperatorGrant marks an operator approval. Only granted pairs are stored,
// revoking deletes the entry.
type OperatorGrant struct {
	Approved bool `json:"approved"`
}

func (g *OperatorGrant) Marshal() ([]byte, error) {
	return json.Marshal(g)
}

func (g *OperatorGrant) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, g)
}

func (g *OperatorGrant) Validate() error {
	if !g.Approved {
		return errors.Wrap(errors.ErrModel, "stored grant must be approved")
	}
	return nil
}

func newTicketBucket() orm.ModelBucket {
	return orm.NewModelBucket("ticket")
}

func newBalanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("tktbal")
}

func newOperatorBucket() orm.ModelBucket {
	return orm.NewModelBucket("tktop")
}

func ticketKey(id int64) []byte {
	return orm.EncodeSequence(id)
}

// operatorKey is the concatenation of two fixed length addresses, so the
// pair is unambiguous without a separator.
func operatorKey(owner, operator registry.Address) []byte {
	key := make([]byte, 0, len(owner)+len(operator))
	key = append(key, owner...)
	return append(key, operator...)
}
