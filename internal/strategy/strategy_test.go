package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryKeys(t *testing.T) {
	assert.Equal(t, []string{"genesis2", "lrm"}, Registry.Keys())
}

func TestRegistryCreate(t *testing.T) {
	s, err := Registry.Create("genesis2")
	require.NoError(t, err)
	assert.IsType(t, &Genesis2{}, s)

	s, err = Registry.Create("lrm")
	require.NoError(t, err)
	assert.IsType(t, &LRM{}, s)

	_, err = Registry.Create("slang")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown strategy")
	assert.Contains(t, err.Error(), "genesis2, lrm")
}
