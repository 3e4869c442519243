package ticket

import "github.com/goldtix/registry/errors"

// guard detects re-entrant mutating calls on a controller. It is not a
// lock: a second acquisition while the flag is held fails instead of
// blocking, because within a single operation re-entrance can only come
// from a recipient hook calling back into the ledger.
type guard struct {
	held bool
}

func (g *guard) acquire() error {
	if g.held {
		return errors.Wrap(ErrReentrancy, "mutating operation already in progress")
	}
	g.held = true
	return nil
}

func (g *guard) release() {
	g.held = false
}
