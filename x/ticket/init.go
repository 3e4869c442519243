package ticket

import (
	"github.com/goldtix/registry"
	"github.com/goldtix/registry/errors"
)

// GenesisTicket describes a ticket minted during chain initialization. An
// empty owner mints to the ledger's own address.
type GenesisTicket struct {
	Owner   registry.Address `json:"owner,omitempty"`
	Name    string           `json:"name"`
	Adn     int64            `json:"adn"`
	Points  int64            `json:"points"`
	Payload string           `json:"payload,omitempty"`
}

// Initializer mints the genesis tickets from the "ticket" section of the
// genesis options.
type Initializer struct {
	Control *Controller
}

var _ registry.Initializer = (*Initializer)(nil)

// FromGenesis reads the ticket configuration and issues every declared
// ticket. Ids are assigned in declaration order starting at one.
func (i *Initializer) FromGenesis(opts registry.Options, db registry.KVStore) error {
	var conf struct {
		Tickets []GenesisTicket `json:"tickets"`
	}
	if err := opts.ReadOptions("ticket", &conf); err != nil {
		return errors.Wrap(err, "ticket options")
	}
	for n, gt := range conf.Tickets {
		owner := gt.Owner
		if owner.IsEmpty() {
			owner = RegistryAddr()
		}
		details := TicketDetails{
			Name:    gt.Name,
			Adn:     gt.Adn,
			Points:  gt.Points,
			Payload: []byte(gt.Payload),
		}
		if _, _, err := i.Control.issue(db, owner, details); err != nil {
			return errors.Wrapf(err, "genesis ticket #%d", n)
		}
	}
	return nil
}
