package x

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goldtix/registry"
	"github.com/goldtix/registry/registrytest"
)

func TestAuthHelpers(t *testing.T) {
	a := registrytest.NewCondition()
	b := registrytest.NewCondition()
	c := registrytest.NewCondition()
	ctx := context.Background()

	auth := &registrytest.Auth{Signers: []registry.Condition{a, b}}

	assert.True(t, a.Equals(MainSigner(ctx, auth)))
	assert.True(t, a.Address().Equals(MainActor(ctx, auth)))

	addrs := GetAddresses(ctx, auth)
	assert.Len(t, addrs, 2)
	assert.True(t, a.Address().Equals(addrs[0]))
	assert.True(t, b.Address().Equals(addrs[1]))

	assert.True(t, HasAllAddresses(ctx, auth, []registry.Address{a.Address(), b.Address()}))
	assert.False(t, HasAllAddresses(ctx, auth, []registry.Address{a.Address(), c.Address()}))
}

func TestMainActorWithoutSigner(t *testing.T) {
	ctx := context.Background()
	auth := &registrytest.Auth{}

	assert.Nil(t, MainSigner(ctx, auth))
	assert.True(t, MainActor(ctx, auth).IsEmpty())
}

func TestChainAuth(t *testing.T) {
	a := registrytest.NewCondition()
	b := registrytest.NewCondition()
	ctx := context.Background()

	auth := ChainAuth(
		&registrytest.Auth{Signer: a},
		&registrytest.Auth{Signer: b},
	)

	assert.True(t, auth.HasAddress(ctx, a.Address()))
	assert.True(t, auth.HasAddress(ctx, b.Address()))
	assert.False(t, auth.HasAddress(ctx, registrytest.NewCondition().Address()))
	assert.Len(t, auth.GetConditions(ctx), 2)
}
