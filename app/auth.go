package app

import (
	"context"

	"github.com/goldtix/registry"
	"github.com/goldtix/registry/x"
)

type contextKey int

const signersKey contextKey = iota

// WithSigners returns a context carrying the given identities as
// authenticated. The host environment must verify signatures before
// calling this; the ledger itself trusts the context.
func WithSigners(ctx registry.Context, signers ...registry.Condition) registry.Context {
	return context.WithValue(ctx, signersKey, signers)
}

// Authenticator resolves the acting identities from the request context.
type Authenticator struct{}

var _ x.Authenticator = Authenticator{}

func (Authenticator) GetConditions(ctx registry.Context) []registry.Condition {
	val := ctx.Value(signersKey)
	if val == nil {
		return nil
	}
	signers, ok := val.([]registry.Condition)
	if !ok {
		return nil
	}
	return signers
}

func (a Authenticator) HasAddress(ctx registry.Context, addr registry.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
