package registry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCondition(t *testing.T) {
	cond := NewCondition("sigs", "ed25519", []byte("some-public-key"))
	require.NoError(t, cond.Validate())

	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "sigs", ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, []byte("some-public-key"), data)

	addr := cond.Address()
	require.NoError(t, addr.Validate())
	assert.Len(t, []byte(addr), AddressLength)

	// the same condition always hashes to the same address
	again := NewCondition("sigs", "ed25519", []byte("some-public-key"))
	assert.True(t, addr.Equals(again.Address()))

	// a different condition hashes elsewhere
	other := NewCondition("sigs", "ed25519", []byte("another-key"))
	assert.False(t, addr.Equals(other.Address()))
}

func TestConditionValidate(t *testing.T) {
	cases := map[string]struct {
		cond    Condition
		wantErr bool
	}{
		"valid":              {cond: NewCondition("sigs", "ed25519", []byte("data"))},
		"nil":                {cond: nil, wantErr: true},
		"missing separators": {cond: Condition("garbage"), wantErr: true},
		"empty data":         {cond: Condition("sigs/ed25519/"), wantErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.cond.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAddressEmptiness(t *testing.T) {
	var addr Address
	assert.True(t, addr.IsEmpty())
	assert.Error(t, addr.Validate())
	assert.True(t, addr.Equals(nil))

	addr = NewCondition("sigs", "ed25519", []byte("key")).Address()
	assert.False(t, addr.IsEmpty())
	assert.NoError(t, addr.Validate())
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr := NewCondition("sigs", "ed25519", []byte("key")).Address()

	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var got Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, addr.Equals(got))
}

func TestAddressUnmarshalJSONFormats(t *testing.T) {
	cond := NewCondition("sigs", "ed25519", []byte("key"))
	addr := cond.Address()

	cases := map[string]string{
		"plain hex":     `"` + addr.String() + `"`,
		"hex prefix":    `"hex:` + addr.String() + `"`,
		"cond prefix":   `"cond:sigs/ed25519/6B6579"`,
		"bech32 prefix": `"bech32:` + addr.Bech32String("tix") + `"`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			var got Address
			require.NoError(t, json.Unmarshal([]byte(raw), &got))
			assert.True(t, addr.Equals(got), "got %s", got)
		})
	}
}
