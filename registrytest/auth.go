package registrytest

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/goldtix/registry"
)

// NewCondition returns a random condition. Each call produces a different
// one, so each call represents a different identity.
func NewCondition() registry.Condition {
	data := make([]byte, 32)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return registry.NewCondition("sigs", "ed25519", data)
}

// Auth is a mock implementing the x.Authenticator interface.
//
// This structure authenticates any of the referenced conditions.
// You can use either Signer or Signers (or both) attributes to reference
// conditions. This is for convenience and each time all signers
// (regardless which attribute) are considered.
type Auth struct {
	// Signer represents an authentication of a single signer. This is a
	// convenience attribute when creating an authentication method for a
	// single signer.
	// When authenticating, all signers declared on this structure are
	// considered.
	Signer registry.Condition

	// Signers represents an authentication of multiple signers.
	Signers []registry.Condition
}

func (a *Auth) GetConditions(registry.Context) []registry.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx registry.Context, addr registry.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return addr.Equals(a.Signer.Address())
}

// CtxAuth is a mock implementing the x.Authenticator interface.
//
// This implementation is using the context to store and retrieve
// permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx registry.Context, permissions ...registry.Condition) registry.Context {
	return context.WithValue(ctx, a.Key, permissions)
}

func (a *CtxAuth) GetConditions(ctx registry.Context) []registry.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]registry.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []registry.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx registry.Context, addr registry.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
