package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldtix/registry"
	"github.com/goldtix/registry/errors"
	"github.com/goldtix/registry/eventlog"
	"github.com/goldtix/registry/registrytest"
	"github.com/goldtix/registry/store"
	"github.com/goldtix/registry/x/ticket"
)

func newTestApp(t *testing.T, issuer registry.Address) *Ticketer {
	t.Helper()
	tck := NewTicketer(store.MemStore(), issuer, nil)
	opts, err := DefaultGenesis("")
	require.NoError(t, err)
	require.NoError(t, tck.InitChain(opts))
	return tck
}

func TestFreshLedger(t *testing.T) {
	tck := newTestApp(t, registrytest.NewCondition().Address())

	assert.Equal(t, DefaultChainID, tck.ChainID())

	owner, err := tck.Control().OwnerOf(tck.Store(), 1)
	require.NoError(t, err)
	assert.True(t, ticket.RegistryAddr().Equals(owner))

	balance, err := tck.Control().BalanceOf(tck.Store(), ticket.RegistryAddr())
	require.NoError(t, err)
	assert.Equal(t, int64(1), balance)

	info, err := tck.Control().TicketInfo(tck.Store(), 1)
	require.NoError(t, err)
	assert.Equal(t, "GOLD TOKEN", info.Name)
	assert.Equal(t, []byte("KILLER"), info.Payload)
}

func TestDeliverLifecycle(t *testing.T) {
	issuer := registrytest.NewCondition()
	alice := registrytest.NewCondition()
	bob := registrytest.NewCondition()
	carol := registrytest.NewCondition()
	tck := newTestApp(t, issuer.Address())

	// the issuer mints a ticket to alice
	ctx := WithSigners(context.Background(), issuer)
	res, err := tck.DeliverTx(ctx, &registrytest.Tx{Msg: &ticket.IssueTicketMsg{
		Owner: alice.Address(), Name: "SILVER TOKEN", Adn: 2, Points: 500,
	}})
	require.NoError(t, err)
	require.Len(t, res.Events, 1)

	// alice approves bob for it
	ctx = WithSigners(context.Background(), alice)
	_, err = tck.DeliverTx(ctx, &registrytest.Tx{Msg: &ticket.ApproveTicketMsg{
		Delegate: bob.Address(), TicketID: 2,
	}})
	require.NoError(t, err)

	// bob moves it to carol and the delegation is spent
	ctx = WithSigners(context.Background(), bob)
	_, err = tck.DeliverTx(ctx, &registrytest.Tx{Msg: &ticket.TransferTicketMsg{
		From: alice.Address(), To: carol.Address(), TicketID: 2,
	}})
	require.NoError(t, err)

	owner, err := tck.Control().OwnerOf(tck.Store(), 2)
	require.NoError(t, err)
	assert.True(t, carol.Address().Equals(owner))
	approved, err := tck.Control().GetApproved(tck.Store(), 2)
	require.NoError(t, err)
	assert.True(t, approved.IsEmpty())
}

func TestDeliverRollsBackOnFailure(t *testing.T) {
	issuer := registrytest.NewCondition()
	alice := registrytest.NewCondition()
	dave := registrytest.NewCondition()
	tck := newTestApp(t, issuer.Address())

	ctx := WithSigners(context.Background(), issuer)
	_, err := tck.DeliverTx(ctx, &registrytest.Tx{Msg: &ticket.IssueTicketMsg{
		Owner: alice.Address(), Name: "SILVER TOKEN", Adn: 2, Points: 500,
	}})
	require.NoError(t, err)

	// dave has no claim on the ticket
	ctx = WithSigners(context.Background(), dave)
	_, err = tck.DeliverTx(ctx, &registrytest.Tx{Msg: &ticket.TransferTicketMsg{
		From: alice.Address(), To: dave.Address(), TicketID: 2,
	}})
	assert.True(t, errors.ErrUnauthorized.Is(err), "want unauthorized, got %+v", err)

	// a stale ownership claim is a state error, also through the router
	ctx = WithSigners(context.Background(), alice)
	_, err = tck.DeliverTx(ctx, &registrytest.Tx{Msg: &ticket.TransferTicketMsg{
		From: dave.Address(), To: alice.Address(), TicketID: 2,
	}})
	assert.True(t, errors.ErrState.Is(err), "want state error, got %+v", err)

	owner, err := tck.Control().OwnerOf(tck.Store(), 2)
	require.NoError(t, err)
	assert.True(t, alice.Address().Equals(owner))
}

func TestUnknownTicketQuery(t *testing.T) {
	tck := newTestApp(t, registrytest.NewCondition().Address())

	_, err := tck.Control().OwnerOf(tck.Store(), 999)
	assert.True(t, errors.ErrNotFound.Is(err), "want not found, got %+v", err)
}

func TestCheckDoesNotPersist(t *testing.T) {
	issuer := registrytest.NewCondition()
	alice := registrytest.NewCondition()
	tck := newTestApp(t, issuer.Address())

	ctx := WithSigners(context.Background(), issuer)
	res, err := tck.CheckTx(ctx, &registrytest.Tx{Msg: &ticket.IssueTicketMsg{
		Owner: alice.Address(), Name: "SILVER TOKEN",
	}})
	require.NoError(t, err)
	assert.NotZero(t, res.GasAllocated)

	total, err := tck.Control().TotalIssued(tck.Store())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestDeliverRecordsEvents(t *testing.T) {
	sink, err := eventlog.Open(":memory:")
	require.NoError(t, err)
	defer sink.Close()

	issuer := registrytest.NewCondition()
	alice := registrytest.NewCondition()
	tck := NewTicketer(store.MemStore(), issuer.Address(), sink)
	opts, err := DefaultGenesis("")
	require.NoError(t, err)
	require.NoError(t, tck.InitChain(opts))

	ctx := WithSigners(context.Background(), issuer)
	_, err = tck.DeliverTx(ctx, &registrytest.Tx{Msg: &ticket.IssueTicketMsg{
		Owner: alice.Address(), Name: "SILVER TOKEN",
	}})
	require.NoError(t, err)

	entries, err := sink.List(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ticket.EventIssue, entries[0].Type)
	assert.Equal(t, "2", entries[0].Attributes["ticket_id"])
}

func TestUnknownRoute(t *testing.T) {
	tck := newTestApp(t, registrytest.NewCondition().Address())

	_, err := tck.DeliverTx(context.Background(), &registrytest.Tx{Msg: &registrytest.Msg{RoutePath: "no/such/route"}})
	assert.True(t, errors.ErrNotFound.Is(err), "want not found, got %+v", err)
}

func TestInitChainRejectsBadChainID(t *testing.T) {
	tck := NewTicketer(store.MemStore(), registrytest.NewCondition().Address(), nil)
	opts, err := DefaultGenesis("x")
	require.NoError(t, err)
	err = tck.InitChain(opts)
	assert.True(t, errors.ErrInput.Is(err), "want input error, got %+v", err)
}
