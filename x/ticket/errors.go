package ticket

import "github.com/goldtix/registry/errors"

var (
	// ErrRejected is returned when a safe transfer recipient refused the
	// ticket, either by returning an error or a wrong acknowledgment.
	ErrRejected = errors.Register(120, "receiver rejected")

	// ErrReentrancy is returned when a mutating operation is started while
	// another one is still in progress on the same controller.
	ErrReentrancy = errors.Register(121, "reentrant call")
)
