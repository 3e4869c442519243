package app

import (
	"encoding/json"

	"github.com/goldtix/registry"
	"github.com/goldtix/registry/errors"
	"github.com/goldtix/registry/x/ticket"
)

// DefaultChainID is used when no chain id is configured.
const DefaultChainID = "goldtix-1"

// DefaultGenesis returns the configuration of a fresh ledger: a single
// GOLD TOKEN ticket owned by the ledger itself.
func DefaultGenesis(chainID string) (registry.Options, error) {
	if chainID == "" {
		chainID = DefaultChainID
	}
	conf := struct {
		Tickets []ticket.GenesisTicket `json:"tickets"`
	}{
		Tickets: []ticket.GenesisTicket{
			{
				Name:    "GOLD TOKEN",
				Adn:     1,
				Points:  10000,
				Payload: "KILLER",
			},
		},
	}
	rawConf, err := json.Marshal(conf)
	if err != nil {
		return nil, errors.Wrap(err, "ticket configuration")
	}
	rawChainID, err := json.Marshal(chainID)
	if err != nil {
		return nil, errors.Wrap(err, "chain id")
	}
	return registry.Options{
		"chain_id": rawChainID,
		"ticket":   rawConf,
	}, nil
}
