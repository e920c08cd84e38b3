package corelib

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/traitdexgo/internal/registry"
	"github.com/vk/traitdexgo/internal/viewer"
)

func TestRegister_DeliversCoreCatalog(t *testing.T) {
	t.Parallel()

	b := registry.NewBridge()
	ix := viewer.NewIndex()
	require.NoError(t, b.Bind(context.Background(), ix))

	m := &Module{}
	require.NoError(t, m.Register(context.Background(), b))

	impls, ok := ix.Crate("corelib")
	require.True(t, ok)
	require.Len(t, impls, 3)
	assert.Equal(t, "impl<T> Iterator for Range<T>", impls[0].Text)
	assert.True(t, impls[2].Synthetic)
}

func TestRegister_UnboundBridgeBuffers(t *testing.T) {
	t.Parallel()

	b := registry.NewBridge()
	m := &Module{}
	require.NoError(t, m.Register(context.Background(), b))

	pending := b.Pending()
	require.NotNil(t, pending)
	_, ok := pending.Get("corelib")
	assert.True(t, ok)
}
