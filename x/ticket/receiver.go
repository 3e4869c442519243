package ticket

import (
	"crypto/sha256"

	"github.com/goldtix/registry"
	"github.com/goldtix/registry/errors"
)

// Receiver is implemented by contract-capable recipients that want to be
// notified when a ticket is safely transferred to them. The operator is
// the address that triggered the transfer, which may differ from the
// previous owner. Accepting the ticket requires returning Ack; any other
// value or an error rolls the transfer back.
type Receiver interface {
	OnTicketReceived(operator, from registry.Address, ticketID int64, data []byte) ([4]byte, error)
}

// Ack is the acknowledgment a Receiver must return to accept a ticket. It
// is the first four bytes of the hash of the hook signature and does not
// depend on the call arguments.
var Ack = ackValue()

func ackValue() [4]byte {
	sum := sha256.Sum256([]byte("OnTicketReceived(operator,from,ticketID,data)"))
	var ack [4]byte
	copy(ack[:], sum[:4])
	return ack
}

// ReceiverRegistry maps addresses to their receiver hooks. Only registered
// addresses are treated as contract-capable; safe transfers to any other
// address behave like plain transfers.
type ReceiverRegistry struct {
	receivers map[string]Receiver
}

func NewReceiverRegistry() *ReceiverRegistry {
	return &ReceiverRegistry{receivers: make(map[string]Receiver)}
}

// Register binds a receiver hook to an address. Registering the same
// address twice fails.
func (r *ReceiverRegistry) Register(addr registry.Address, recv Receiver) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if recv == nil {
		return errors.Wrap(errors.ErrInput, "nil receiver")
	}
	if _, ok := r.receivers[string(addr)]; ok {
		return errors.Wrapf(errors.ErrDuplicate, "receiver %s", addr)
	}
	r.receivers[string(addr)] = recv
	return nil
}

// Lookup returns the receiver hook bound to an address, if any.
func (r *ReceiverRegistry) Lookup(addr registry.Address) (Receiver, bool) {
	recv, ok := r.receivers[string(addr)]
	return recv, ok
}
