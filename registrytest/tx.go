package registrytest

import "github.com/goldtix/registry"

// Tx represents a transaction mock carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg registry.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ registry.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (registry.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a message mock.
type Msg struct {
	// RoutePath is returned by the Path method, consumed by the router.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte
	// ValidateErr if set is returned by Validate.
	ValidateErr error
	// Err if set is returned by any marshaling method call.
	Err error
}

var _ registry.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.ValidateErr
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}
