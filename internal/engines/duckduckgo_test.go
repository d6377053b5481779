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

const duckduckgoFixture = `
<html><body>
<div id="links">
  <div class="web-result">
    <h2><a href="https://example.com/a">Result A</a></h2>
    <a class="result__snippet">Snippet A</a>
  </div>
  <div class="web-result">
    <h2><a href="https://example.com/b">Result B</a></h2>
    <a class="result__snippet">Snippet B</a>
  </div>
</div>
</body></html>`

func TestDuckDuckGo_ParsesWebResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "go", r.FormValue("q"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(duckduckgoFixture))
	}))
	defer srv.Close()

	prev := duckduckgoSearchURL
	duckduckgoSearchURL = srv.URL
	defer func() { duckduckgoSearchURL = prev }()

	d := NewDuckDuckGo()
	results, err := d.Search(context.Background(), models.SearchQuery{Q: "go"}, nil, models.DefaultEngineConfig())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "https://example.com/a", results[0].URL)
	assert.Equal(t, models.Text("Snippet A"), results[0].Content)
}
