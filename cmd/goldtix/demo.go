package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goldtix/registry"
	"github.com/goldtix/registry/app"
	"github.com/goldtix/registry/eventlog"
	"github.com/goldtix/registry/registrytest"
	"github.com/goldtix/registry/store"
	"github.com/goldtix/registry/x/ticket"
)

// demoTx adapts a message into a transaction for local delivery.
type demoTx struct {
	msg registry.Msg
}

func (tx demoTx) GetMsg() (registry.Msg, error) {
	return tx.msg, nil
}

// vault accepts every ticket it is offered.
type vault struct{}

func (vault) OnTicketReceived(operator, from registry.Address, ticketID int64, data []byte) ([4]byte, error) {
	return ticket.Ack, nil
}

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted session against a fresh in-memory ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig()
			if err != nil {
				return fmt.Errorf("configuration: %w", err)
			}
			return runDemo(conf)
		},
	}
}

func runDemo(conf config) error {
	log := newLogger(conf.Verbose)

	sink, err := eventlog.Open(conf.EventDB)
	if err != nil {
		return fmt.Errorf("event database: %w", err)
	}
	defer sink.Close()

	issuer := registrytest.NewCondition()
	alice := registrytest.NewCondition()
	bob := registrytest.NewCondition()

	ledger := app.NewTicketer(store.MemStore(), issuer.Address(), sink)
	opts, err := app.DefaultGenesis(conf.ChainID)
	if err != nil {
		return err
	}
	if err := ledger.InitChain(opts); err != nil {
		return err
	}
	log.Info().Str("chain_id", ledger.ChainID()).Msg("ledger initialized")

	owner, err := ledger.Control().OwnerOf(ledger.Store(), 1)
	if err != nil {
		return err
	}
	log.Info().Stringer("owner", owner).Int64("ticket_id", 1).Msg("genesis ticket")

	deliver := func(signer registry.Condition, msg registry.Msg) error {
		ctx := app.WithSigners(context.Background(), signer)
		res, err := ledger.DeliverTx(ctx, demoTx{msg: msg})
		if err != nil {
			return err
		}
		for _, ev := range res.Events {
			log.Info().Str("type", ev.Type).Interface("attributes", ev.Attributes).Msg("event")
		}
		return nil
	}

	// mint a second ticket to alice
	if err := deliver(issuer, &ticket.IssueTicketMsg{
		Owner:  alice.Address(),
		Name:   "SILVER TOKEN",
		Adn:    2,
		Points: 500,
	}); err != nil {
		return err
	}

	// alice delegates it to bob, bob moves it back to alice's vault
	if err := deliver(alice, &ticket.ApproveTicketMsg{Delegate: bob.Address(), TicketID: 2}); err != nil {
		return err
	}
	safe := registrytest.NewCondition().Address()
	if err := ledger.Receivers().Register(safe, vault{}); err != nil {
		return err
	}
	if err := deliver(bob, &ticket.SafeTransferTicketMsg{
		From:     alice.Address(),
		To:       safe,
		TicketID: 2,
		Data:     []byte("demo"),
	}); err != nil {
		return err
	}

	owner, err = ledger.Control().OwnerOf(ledger.Store(), 2)
	if err != nil {
		return err
	}
	log.Info().Stringer("owner", owner).Int64("ticket_id", 2).Msg("final owner")
	return nil
}

func genesisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genesis",
		Short: "Print the default genesis configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig()
			if err != nil {
				return fmt.Errorf("configuration: %w", err)
			}
			opts, err := app.DefaultGenesis(conf.ChainID)
			if err != nil {
				return err
			}
			raw, err := json.MarshalIndent(opts, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}
}
