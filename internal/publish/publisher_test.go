package publish

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/traitdexgo/internal/catalog"
	"github.com/vk/traitdexgo/internal/registry"
)

var _ registry.Consumer = (*Publisher)(nil)

func TestEvent_WireShape(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(event{
		Crate: "mylib",
		Implementors: []catalog.Implementor{
			{Text: "impl Iterator for Foo", TypePath: []string{"mylib", "Foo"}},
		},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"crate": "mylib",
		"implementors": [
			{"text": "impl Iterator for Foo", "synthetic": false, "types": ["mylib", "Foo"]}
		]
	}`, string(data))
}

func TestRegisterImplementors_NotConnectedIsBestEffort(t *testing.T) {
	t.Parallel()

	p := &Publisher{}
	err := p.RegisterImplementors(context.Background(), catalog.New())
	assert.NoError(t, err, "a missing hub connection must not fail the build")
}

func TestConnect_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := Connect(context.Background(), Options{URL: "://not-a-url"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse hub URL")
}
