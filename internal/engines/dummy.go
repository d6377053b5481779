package engines

import (
	"context"
	"fmt"
	"net/http"

	"metasearch/engine/models"
)

// Dummy is a deterministic, network-free fixture adapter: it exists for
// tests and the CLI demo, and as the template new adapters are copied from.
type Dummy struct {
	n int
}

// NewDummy builds a Dummy that returns n synthetic results per query.
func NewDummy(n int) *Dummy {
	if n <= 0 {
		n = 5
	}
	return &Dummy{n: n}
}

func (*Dummy) ID() string           { return "dummy" }
func (*Dummy) Name() string         { return "Dummy" }
func (*Dummy) Categories() []string { return []string{"general"} }

func (d *Dummy) Search(_ context.Context, query models.SearchQuery, _ *http.Client, _ models.EngineConfig) ([]models.SearchResult, error) {
	results := make([]models.SearchResult, d.n)
	for i := range results {
		results[i] = models.SearchResult{
			URL:     fmt.Sprintf("https://dummy.example/%s/%d", query.Q, i),
			Title:   fmt.Sprintf("%s result %d", query.Q, i+1),
			Content: models.Text(fmt.Sprintf("deterministic fixture content for %q, rank %d", query.Q, i+1)),
		}
	}
	return results, nil
}
