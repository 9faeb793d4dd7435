package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget interface {
	Kind() string
}

// gear needs nonzero size: zero-size allocations may share one address,
// which would defeat the NotSame freshness check below.
type gear struct{ _ byte }

func (g *gear) Kind() string { return "gear" }

type lever struct{}

func (l *lever) Kind() string { return "lever" }

func TestRegistry(t *testing.T) {
	r := New[widget]("widget")
	r.Register("gear", func() widget { return &gear{} })
	r.Register("lever", func() widget { return &lever{} })

	assert.Equal(t, []string{"gear", "lever"}, r.Keys())
	assert.True(t, r.Contains("gear"))
	assert.False(t, r.Contains("piston"))

	w, err := r.Create("lever")
	require.NoError(t, err)
	assert.Equal(t, "lever", w.Kind())

	w1, err := r.Create("gear")
	require.NoError(t, err)
	w2, err := r.Create("gear")
	require.NoError(t, err)
	assert.NotSame(t, w1, w2, "each Create builds a fresh instance")
}

func TestRegistryUnknownKey(t *testing.T) {
	r := New[widget]("widget")
	r.Register("gear", func() widget { return &gear{} })

	_, err := r.Create("piston")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown widget "piston"`)
	assert.Contains(t, err.Error(), "available: gear")
}

func TestRegistryDuplicateKeyPanics(t *testing.T) {
	r := New[widget]("widget")
	r.Register("gear", func() widget { return &gear{} })
	assert.Panics(t, func() {
		r.Register("gear", func() widget { return &gear{} })
	})
}
