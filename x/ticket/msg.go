package ticket

import (
	"encoding/json"

	"github.com/goldtix/registry"
	"github.com/goldtix/registry/errors"
)

const (
	pathIssue         = "ticket/issue"
	pathTransfer      = "ticket/transfer"
	pathSafeTransfer  = "ticket/safe_transfer"
	pathBatchTransfer = "ticket/batch_transfer"
	pathApprove       = "ticket/approve"
	pathSetOperator   = "ticket/set_operator"
)

// Message validation checks shape only. Whether the addresses make sense
// for the current ledger state is decided by the controller, so that the
// error precedence of a transfer is the same no matter the entry point.

var _ registry.Msg = (*IssueTicketMsg)(nil)

// IssueTicketMsg mints a new ticket. Only the configured issuer may
// deliver it.
type IssueTicketMsg struct {
	Owner   registry.Address `json:"owner"`
	Name    string           `json:"name"`
	Adn     int64            `json:"adn"`
	Points  int64            `json:"points"`
	Payload []byte           `json:"payload,omitempty"`
}

func (IssueTicketMsg) Path() string {
	return pathIssue
}

func (m *IssueTicketMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(m.Owner.Validate(), "owner"))
	if m.Name == "" {
		errs = errors.Append(errs, errors.Wrap(errors.ErrEmpty, "name"))
	}
	if len(m.Name) > maxNameLength {
		errs = errors.Append(errs, errors.Wrapf(errors.ErrInput, "name longer than %d characters", maxNameLength))
	}
	if m.Points < 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrInput, "negative points"))
	}
	return errs
}

func (m *IssueTicketMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *IssueTicketMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

var _ registry.Msg = (*TransferTicketMsg)(nil)

// TransferTicketMsg moves one ticket from its owner to another address.
type TransferTicketMsg struct {
	From     registry.Address `json:"from"`
	To       registry.Address `json:"to"`
	TicketID int64            `json:"ticket_id"`
}

func (TransferTicketMsg) Path() string {
	return pathTransfer
}

func (m *TransferTicketMsg) Validate() error {
	return validateTransferShape(m.From, m.To, m.TicketID)
}

func (m *TransferTicketMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *TransferTicketMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

var _ registry.Msg = (*SafeTransferTicketMsg)(nil)

// SafeTransferTicketMsg moves one ticket and notifies a contract-capable
// recipient, rolling back unless it acknowledges.
type SafeTransferTicketMsg struct {
	From     registry.Address `json:"from"`
	To       registry.Address `json:"to"`
	TicketID int64            `json:"ticket_id"`
	Data     []byte           `json:"data,omitempty"`
}

func (SafeTransferTicketMsg) Path() string {
	return pathSafeTransfer
}

func (m *SafeTransferTicketMsg) Validate() error {
	return validateTransferShape(m.From, m.To, m.TicketID)
}

func (m *SafeTransferTicketMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *SafeTransferTicketMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

var _ registry.Msg = (*BatchTransferTicketMsg)(nil)

// BatchTransferTicketMsg moves several tickets between the same pair of
// addresses as one atomic unit.
type BatchTransferTicketMsg struct {
	From      registry.Address `json:"from"`
	To        registry.Address `json:"to"`
	TicketIDs []int64          `json:"ticket_ids"`
}

func (BatchTransferTicketMsg) Path() string {
	return pathBatchTransfer
}

func (m *BatchTransferTicketMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(m.From.Validate(), "from"))
	if !m.To.IsEmpty() {
		errs = errors.Append(errs, errors.Wrap(m.To.Validate(), "to"))
	}
	if len(m.TicketIDs) == 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrEmpty, "ticket ids"))
	}
	for _, id := range m.TicketIDs {
		if id < 0 {
			errs = errors.Append(errs, errors.Wrapf(errors.ErrInput, "negative ticket id %d", id))
		}
	}
	return errs
}

func (m *BatchTransferTicketMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *BatchTransferTicketMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

var _ registry.Msg = (*ApproveTicketMsg)(nil)

// ApproveTicketMsg sets or clears the approved delegate of one ticket. An
// empty delegate clears the approval.
type ApproveTicketMsg struct {
	Delegate registry.Address `json:"delegate,omitempty"`
	TicketID int64            `json:"ticket_id"`
}

func (ApproveTicketMsg) Path() string {
	return pathApprove
}

func (m *ApproveTicketMsg) Validate() error {
	var errs error
	if !m.Delegate.IsEmpty() {
		errs = errors.Append(errs, errors.Wrap(m.Delegate.Validate(), "delegate"))
	}
	if m.TicketID < 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrInput, "negative ticket id"))
	}
	return errs
}

func (m *ApproveTicketMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *ApproveTicketMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

var _ registry.Msg = (*SetOperatorMsg)(nil)

// SetOperatorMsg grants or revokes blanket control over all of the
// signer's tickets for one operator address.
type SetOperatorMsg struct {
	Operator registry.Address `json:"operator"`
	Approved bool             `json:"approved"`
}

func (SetOperatorMsg) Path() string {
	return pathSetOperator
}

func (m *SetOperatorMsg) Validate() error {
	return errors.Wrap(m.Operator.Validate(), "operator")
}

func (m *SetOperatorMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *SetOperatorMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

// validateTransferShape checks only what can be known without the ledger
// state. The destination may be empty here, the state machine rejects it
// in the right order.
func validateTransferShape(from, to registry.Address, id int64) error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(from.Validate(), "from"))
	if !to.IsEmpty() {
		errs = errors.Append(errs, errors.Wrap(to.Validate(), "to"))
	}
	if id < 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrInput, "negative ticket id"))
	}
	return errs
}
