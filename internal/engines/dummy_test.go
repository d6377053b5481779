package engines

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metasearch/engine/models"
)

func TestDummy_ReturnsRequestedCount(t *testing.T) {
	d := NewDummy(3)
	results, err := d.Search(context.Background(), models.SearchQuery{Q: "go"}, nil, models.DefaultEngineConfig())
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Contains(t, r.URL, "go")
		assert.IsType(t, models.Text(""), r.Content)
	}
}

func TestDummy_DefaultsWhenNonPositive(t *testing.T) {
	d := NewDummy(0)
	results, err := d.Search(context.Background(), models.SearchQuery{Q: "go"}, nil, models.DefaultEngineConfig())
	require.NoError(t, err)
	assert.Len(t, results, 5)
}
