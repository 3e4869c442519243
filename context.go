package registry

import (
	"context"
	"regexp"

	"github.com/goldtix/registry/errors"
)

// Context is just the standard request context, with helpers below to
// store common info, such as the chain id. Each extension may add its
// own keys to enrich the context with specific data.
//
// There should exist two functions for every XYZ of type T
// that we want to support in Context:
//
//	WithXYZ(Context, T) Context
//	GetXYZ(Context) (val T, ok bool)
type Context = context.Context

type contextKey int

const (
	contextKeyChainID contextKey = iota
)

// IsValidChainID is the RegExp to ensure valid chain IDs.
var IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString

// WithChainID sets the chain id for the Context.
// Panics on invalid chain id or if the value was already set, to avoid
// lower-level modules overwriting it.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("chain id already set")
	}
	if !IsValidChainID(chainID) {
		panic(errors.Wrapf(errors.ErrInput, "chain id: %v", chainID))
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the chain id from the context.
// Panics if the chain id was never set. The chain id is required
// in many places and that is a configuration error.
func GetChainID(ctx Context) string {
	val, ok := ctx.Value(contextKeyChainID).(string)
	if !ok {
		panic("chain id is not in context")
	}
	return val
}
