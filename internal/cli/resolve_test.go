package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveID(t *testing.T) {
	ids := []string{"abc123", "abd456", "abc"}

	got, err := resolveID("work item", "abc", ids)
	require.NoError(t, err)
	assert.Equal(t, "abc", got, "exact match wins over prefix matches")

	got, err = resolveID("work item", "abd", ids)
	require.NoError(t, err)
	assert.Equal(t, "abd456", got)

	_, err = resolveID("work item", "ab", ids)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	_, err = resolveID("event", "zz", ids)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no event matches "zz"`)

	_, err = resolveID("event", " ", ids)
	require.Error(t, err)
}
