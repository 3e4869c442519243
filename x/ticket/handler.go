package ticket

import (
	"github.com/goldtix/registry"
	"github.com/goldtix/registry/errors"
	"github.com/goldtix/registry/x"
)

const (
	issueCost    = 300
	transferCost = 100
	approveCost  = 50
)

// RegisterRoutes wires the ticket message handlers into a router. Only the
// issuer address may deliver IssueTicketMsg.
func RegisterRoutes(r registry.Registry, auth x.Authenticator, issuer registry.Address, control *Controller) {
	r.Handle(&IssueTicketMsg{}, &issueHandler{auth: auth, issuer: issuer, control: control})
	r.Handle(&TransferTicketMsg{}, &transferHandler{auth: auth, control: control})
	r.Handle(&SafeTransferTicketMsg{}, &safeTransferHandler{auth: auth, control: control})
	r.Handle(&BatchTransferTicketMsg{}, &batchTransferHandler{auth: auth, control: control})
	r.Handle(&ApproveTicketMsg{}, &approveHandler{auth: auth, control: control})
	r.Handle(&SetOperatorMsg{}, &setOperatorHandler{auth: auth, control: control})
}

// mutableStore unwraps the transactional capability that every mutating
// handler needs from its store.
func mutableStore(db registry.KVStore) (registry.CacheableKVStore, error) {
	cdb, ok := db.(registry.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "store does not support transactions")
	}
	return cdb, nil
}

type issueHandler struct {
	auth    x.Authenticator
	issuer  registry.Address
	control *Controller
}

var _ registry.Handler = (*issueHandler)(nil)

func (h *issueHandler) Check(ctx registry.Context, db registry.KVStore, tx registry.Tx) (*registry.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &registry.CheckResult{GasAllocated: issueCost}, nil
}

func (h *issueHandler) Deliver(ctx registry.Context, db registry.KVStore, tx registry.Tx) (*registry.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	cdb, err := mutableStore(db)
	if err != nil {
		return nil, err
	}
	id, events, err := h.control.Issue(cdb, msg.Owner, TicketDetails{
		Name:    msg.Name,
		Adn:     msg.Adn,
		Points:  msg.Points,
		Payload: msg.Payload,
	})
	if err != nil {
		return nil, err
	}
	return &registry.DeliverResult{
		Data:   ticketKey(id),
		Events: events,
	}, nil
}

func (h *issueHandler) validate(ctx registry.Context, tx registry.Tx) (*IssueTicketMsg, error) {
	var msg IssueTicketMsg
	if err := registry.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, h.issuer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "issuer signature required")
	}
	return &msg, nil
}

type transferHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ registry.Handler = (*transferHandler)(nil)

func (h *transferHandler) Check(ctx registry.Context, db registry.KVStore, tx registry.Tx) (*registry.CheckResult, error) {
	var msg TransferTicketMsg
	if err := registry.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &registry.CheckResult{GasAllocated: transferCost}, nil
}

func (h *transferHandler) Deliver(ctx registry.Context, db registry.KVStore, tx registry.Tx) (*registry.DeliverResult, error) {
	var msg TransferTicketMsg
	if err := registry.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	cdb, err := mutableStore(db)
	if err != nil {
		return nil, err
	}
	actor := x.MainActor(ctx, h.auth)
	events, err := h.control.Transfer(cdb, actor, msg.From, msg.To, msg.TicketID)
	if err != nil {
		return nil, err
	}
	return &registry.DeliverResult{Events: events}, nil
}

type safeTransferHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ registry.Handler = (*safeTransferHandler)(nil)

func (h *safeTransferHandler) Check(ctx registry.Context, db registry.KVStore, tx registry.Tx) (*registry.CheckResult, error) {
	var msg SafeTransferTicketMsg
	if err := registry.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &registry.CheckResult{GasAllocated: transferCost}, nil
}

func (h *safeTransferHandler) Deliver(ctx registry.Context, db registry.KVStore, tx registry.Tx) (*registry.DeliverResult, error) {
	var msg SafeTransferTicketMsg
	if err := registry.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	cdb, err := mutableStore(db)
	if err != nil {
		return nil, err
	}
	actor := x.MainActor(ctx, h.auth)
	events, err := h.control.SafeTransfer(cdb, actor, msg.From, msg.To, msg.TicketID, msg.Data)
	if err != nil {
		return nil, err
	}
	return &registry.DeliverResult{Events: events}, nil
}

type batchTransferHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ registry.Handler = (*batchTransferHandler)(nil)

func (h *batchTransferHandler) Check(ctx registry.Context, db registry.KVStore, tx registry.Tx) (*registry.CheckResult, error) {
	var msg BatchTransferTicketMsg
	if err := registry.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &registry.CheckResult{GasAllocated: transferCost * int64(len(msg.TicketIDs))}, nil
}

func (h *batchTransferHandler) Deliver(ctx registry.Context, db registry.KVStore, tx registry.Tx) (*registry.DeliverResult, error) {
	var msg BatchTransferTicketMsg
	if err := registry.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	cdb, err := mutableStore(db)
	if err != nil {
		return nil, err
	}
	actor := x.MainActor(ctx, h.auth)
	events, err := h.control.BatchTransfer(cdb, actor, msg.From, msg.To, msg.TicketIDs)
	if err != nil {
		return nil, err
	}
	return &registry.DeliverResult{Events: events}, nil
}

type approveHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ registry.Handler = (*approveHandler)(nil)

func (h *approveHandler) Check(ctx registry.Context, db registry.KVStore, tx registry.Tx) (*registry.CheckResult, error) {
	var msg ApproveTicketMsg
	if err := registry.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &registry.CheckResult{GasAllocated: approveCost}, nil
}

func (h *approveHandler) Deliver(ctx registry.Context, db registry.KVStore, tx registry.Tx) (*registry.DeliverResult, error) {
	var msg ApproveTicketMsg
	if err := registry.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	cdb, err := mutableStore(db)
	if err != nil {
		return nil, err
	}
	actor := x.MainActor(ctx, h.auth)
	events, err := h.control.Approve(cdb, actor, msg.Delegate, msg.TicketID)
	if err != nil {
		return nil, err
	}
	return &registry.DeliverResult{Events: events}, nil
}

type setOperatorHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ registry.Handler = (*setOperatorHandler)(nil)

func (h *setOperatorHandler) Check(ctx registry.Context, db registry.KVStore, tx registry.Tx) (*registry.CheckResult, error) {
	var msg SetOperatorMsg
	if err := registry.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &registry.CheckResult{GasAllocated: approveCost}, nil
}

func (h *setOperatorHandler) Deliver(ctx registry.Context, db registry.KVStore, tx registry.Tx) (*registry.DeliverResult, error) {
	var msg SetOperatorMsg
	if err := registry.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	cdb, err := mutableStore(db)
	if err != nil {
		return nil, err
	}
	actor := x.MainActor(ctx, h.auth)
	if actor.IsEmpty() {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	events, err := h.control.SetOperator(cdb, actor, msg.Operator, msg.Approved)
	if err != nil {
		return nil, err
	}
	return &registry.DeliverResult{Events: events}, nil
}
