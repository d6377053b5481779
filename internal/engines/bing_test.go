package engines

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metasearch/engine/models"
)

const bingFixture = `
<html><body>
<ol id="b_results">
  <li class="b_algo">
    <h2><a href="https://example.com/a">Result A</a></h2>
    <div class="b_caption"><p>Snippet A</p></div>
  </li>
  <li class="b_algo">
    <h2><a href="https://example.com/b">Result B</a></h2>
    <div class="b_algo_text">Snippet B</div>
  </li>
</ol>
</body></html>`

func TestBing_ParsesResultList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(bingFixture))
	}))
	defer srv.Close()

	prev := bingSearchURL
	bingSearchURL = srv.URL
	defer func() { bingSearchURL = prev }()

	b := NewBing()
	results, err := b.Search(context.Background(), models.SearchQuery{Q: "go"}, srv.Client(), models.DefaultEngineConfig())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "https://example.com/a", results[0].URL)
	assert.Equal(t, "Result A", results[0].Title)
	assert.Equal(t, models.Text("Snippet A"), results[0].Content)

	assert.Equal(t, "https://example.com/b", results[1].URL)
	assert.Equal(t, models.Text("Snippet B"), results[1].Content)
}

func TestBing_SkipsResultsWithoutHref(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><li class="b_algo"><h2><a>No href</a></h2></li></body></html>`))
	}))
	defer srv.Close()

	prev := bingSearchURL
	bingSearchURL = srv.URL
	defer func() { bingSearchURL = prev }()

	b := NewBing()
	results, err := b.Search(context.Background(), models.SearchQuery{Q: "go"}, srv.Client(), models.DefaultEngineConfig())
	require.NoError(t, err)
	assert.Empty(t, results)
}
