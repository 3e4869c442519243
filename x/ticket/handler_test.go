package ticket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldtix/registry"
	"github.com/goldtix/registry/errors"
	"github.com/goldtix/registry/registrytest"
	"github.com/goldtix/registry/store"
	"github.com/goldtix/registry/x"
)

type testRouter map[string]registry.Handler

func (r testRouter) Handle(m registry.Msg, h registry.Handler) {
	r[m.Path()] = h
}

func TestRegisterRoutes(t *testing.T) {
	r := make(testRouter)
	RegisterRoutes(r, &registrytest.Auth{}, registrytest.NewCondition().Address(), NewController(nil))

	for _, path := range []string{
		"ticket/issue",
		"ticket/transfer",
		"ticket/safe_transfer",
		"ticket/batch_transfer",
		"ticket/approve",
		"ticket/set_operator",
	} {
		assert.NotNil(t, r[path], "no handler for %q", path)
	}
}

func TestIssueHandler(t *testing.T) {
	db := store.MemStore()
	control := NewController(nil)
	issuer := registrytest.NewCondition()
	alice := registrytest.NewCondition()
	ctx := context.Background()

	h := issueHandler{
		auth:    &registrytest.Auth{Signer: issuer},
		issuer:  issuer.Address(),
		control: control,
	}
	tx := &registrytest.Tx{Msg: &IssueTicketMsg{
		Owner:   alice.Address(),
		Name:    "GOLD TOKEN",
		Adn:     1,
		Points:  10000,
		Payload: []byte("KILLER"),
	}}

	cres, err := h.Check(ctx, db, tx)
	require.NoError(t, err)
	assert.Equal(t, int64(issueCost), cres.GasAllocated)

	dres, err := h.Deliver(ctx, db, tx)
	require.NoError(t, err)
	assert.Equal(t, ticketKey(1), dres.Data)
	require.Len(t, dres.Events, 1)
	assert.Equal(t, EventIssue, dres.Events[0].Type)

	owner, err := control.OwnerOf(db, 1)
	require.NoError(t, err)
	assert.True(t, alice.Address().Equals(owner))

	// anyone else is refused
	h.auth = &registrytest.Auth{Signer: alice}
	_, err = h.Deliver(ctx, db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err), "want unauthorized, got %+v", err)
}

func TestTransferHandler(t *testing.T) {
	db := store.MemStore()
	control := NewController(nil)
	alice := registrytest.NewCondition()
	bob := registrytest.NewCondition()
	ctx := context.Background()
	_, _, err := control.Issue(db, alice.Address(), goldDetails())
	require.NoError(t, err)

	h := transferHandler{auth: &registrytest.Auth{Signer: alice}, control: control}
	tx := &registrytest.Tx{Msg: &TransferTicketMsg{
		From:     alice.Address(),
		To:       bob.Address(),
		TicketID: 1,
	}}

	cres, err := h.Check(ctx, db, tx)
	require.NoError(t, err)
	assert.Equal(t, int64(transferCost), cres.GasAllocated)

	dres, err := h.Deliver(ctx, db, tx)
	require.NoError(t, err)
	require.Len(t, dres.Events, 1)
	assert.Equal(t, EventTransfer, dres.Events[0].Type)

	owner, err := control.OwnerOf(db, 1)
	require.NoError(t, err)
	assert.True(t, bob.Address().Equals(owner))
}

func TestSafeTransferHandlerRollback(t *testing.T) {
	db := store.MemStore()
	receivers := NewReceiverRegistry()
	control := NewController(receivers)
	alice := registrytest.NewCondition()
	vault := registrytest.NewCondition()
	ctx := context.Background()

	require.NoError(t, receivers.Register(vault.Address(), &ackReceiver{ack: [4]byte{0xde, 0xad, 0xbe, 0xef}}))
	_, _, err := control.Issue(db, alice.Address(), goldDetails())
	require.NoError(t, err)

	h := safeTransferHandler{auth: &registrytest.Auth{Signer: alice}, control: control}
	tx := &registrytest.Tx{Msg: &SafeTransferTicketMsg{
		From:     alice.Address(),
		To:       vault.Address(),
		TicketID: 1,
	}}

	_, err = h.Deliver(ctx, db, tx)
	assert.True(t, ErrRejected.Is(err), "want rejected, got %+v", err)

	owner, err := control.OwnerOf(db, 1)
	require.NoError(t, err)
	assert.True(t, alice.Address().Equals(owner))
}

func TestBatchTransferHandler(t *testing.T) {
	db := store.MemStore()
	control := NewController(nil)
	alice := registrytest.NewCondition()
	bob := registrytest.NewCondition()
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, _, err := control.Issue(db, alice.Address(), goldDetails())
		require.NoError(t, err)
	}

	h := batchTransferHandler{auth: &registrytest.Auth{Signer: alice}, control: control}
	tx := &registrytest.Tx{Msg: &BatchTransferTicketMsg{
		From:      alice.Address(),
		To:        bob.Address(),
		TicketIDs: []int64{1, 2},
	}}

	cres, err := h.Check(ctx, db, tx)
	require.NoError(t, err)
	assert.Equal(t, int64(2*transferCost), cres.GasAllocated)

	dres, err := h.Deliver(ctx, db, tx)
	require.NoError(t, err)
	assert.Len(t, dres.Events, 3)

	balance, err := control.BalanceOf(db, bob.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(2), balance)
}

func TestApproveAndOperatorHandlers(t *testing.T) {
	db := store.MemStore()
	control := NewController(nil)
	alice := registrytest.NewCondition()
	bob := registrytest.NewCondition()
	ctx := context.Background()
	_, _, err := control.Issue(db, alice.Address(), goldDetails())
	require.NoError(t, err)

	auth := &registrytest.Auth{Signer: alice}

	ah := approveHandler{auth: auth, control: control}
	atx := &registrytest.Tx{Msg: &ApproveTicketMsg{Delegate: bob.Address(), TicketID: 1}}
	dres, err := ah.Deliver(ctx, db, atx)
	require.NoError(t, err)
	require.Len(t, dres.Events, 1)
	assert.Equal(t, EventApproval, dres.Events[0].Type)

	approved, err := control.GetApproved(db, 1)
	require.NoError(t, err)
	assert.True(t, bob.Address().Equals(approved))

	oh := setOperatorHandler{auth: auth, control: control}
	otx := &registrytest.Tx{Msg: &SetOperatorMsg{Operator: bob.Address(), Approved: true}}
	dres, err = oh.Deliver(ctx, db, otx)
	require.NoError(t, err)
	require.Len(t, dres.Events, 1)
	assert.Equal(t, EventApprovalForAll, dres.Events[0].Type)

	ok, err := control.IsOperator(db, alice.Address(), bob.Address())
	require.NoError(t, err)
	assert.True(t, ok)

	// without a signer there is no actor
	oh.auth = &registrytest.Auth{}
	_, err = oh.Deliver(ctx, db, otx)
	assert.True(t, errors.ErrUnauthorized.Is(err), "want unauthorized, got %+v", err)
}

var _ x.Authenticator = (*registrytest.Auth)(nil)
