// internal/nodeid/identity_test.go
package nodeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity_String(t *testing.T) {
	testCases := []struct {
		name        string
		id          Identity
		expectedStr string
	}{
		{name: "plain package", id: New("left-pad", "1.3.0"), expectedStr: "left-pad@1.3.0"},
		{name: "scoped package", id: New("@types/node", "20.1.0"), expectedStr: "@types/node@20.1.0"},
		{name: "range version kept verbatim", id: New("lodash", "^4.17.0"), expectedStr: "lodash@^4.17.0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStr, tc.id.String())
		})
	}
}

func TestIdentity_VersionIsOpaque(t *testing.T) {
	a := New("A", "1.0")
	b := New("A", "1.0.0")

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a.String(), b.String())
	assert.Equal(t, a, New("A", "1.0"))
}

func TestParse_RoundTrip(t *testing.T) {
	keys := []string{
		"A@1.0",
		"@scope/pkg@2.0.0",
		"react-dom@>=16 <18",
		"weird@name@3",
	}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			id, err := Parse(key)
			require.NoError(t, err)
			assert.Equal(t, key, id.String())
		})
	}
}

func TestParse_SplitsAtLastSeparator(t *testing.T) {
	id, err := Parse("@scope/pkg@2.0.0")
	require.NoError(t, err)
	assert.Equal(t, "@scope/pkg", id.Name)
	assert.Equal(t, "2.0.0", id.Version)
}

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		key  string
	}{
		{name: "empty", key: ""},
		{name: "no separator", key: "left-pad"},
		{name: "empty name", key: "@1.0"},
		{name: "empty version", key: "left-pad@"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.key)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestSpec_Identity(t *testing.T) {
	spec := NewSpec("B", "~2.1")
	assert.Equal(t, New("B", "~2.1"), spec.Identity())
	assert.Equal(t, "B@~2.1", spec.String())
}
