package x

import (
	"github.com/goldtix/registry"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding one implementation for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled,
	// you may want the GetAddresses helper.
	GetConditions(registry.Context) []registry.Condition
	// HasAddress checks if any condition matches this address.
	HasAddress(registry.Context, registry.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticators.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators.
func (m MultiAuth) GetConditions(ctx registry.Context) []registry.Condition {
	var res []registry.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator supports this address.
func (m MultiAuth) HasAddress(ctx registry.Context, addr registry.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator.
func GetAddresses(ctx registry.Context, auth Authenticator) []registry.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]registry.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first condition if any, otherwise nil.
func MainSigner(ctx registry.Context, auth Authenticator) registry.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// MainActor returns the address of the first condition if any, otherwise
// the null identity. This is the identity an operation is performed as.
func MainActor(ctx registry.Context, auth Authenticator) registry.Address {
	if signer := MainSigner(ctx, auth); signer != nil {
		return signer.Address()
	}
	return nil
}

// HasAllAddresses returns true if all elements in required are
// also in the context.
func HasAllAddresses(ctx registry.Context, auth Authenticator, required []registry.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}
