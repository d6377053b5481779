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

const qwantFixture = `{
  "status": "success",
  "data": {"result": {"items": {"mainline": [
    {"type": "web", "items": [{"title": "Web result", "url": "https://example.com/w", "desc": "a web snippet"}]},
    {"type": "videos", "items": [{"title": "Video result", "url": "https://example.com/v", "thumbnail": "https://example.com/thumb.jpg", "duration": 65000}]},
    {"type": "ignored-row-type", "items": [{"title": "Should not appear", "url": "https://example.com/x"}]}
  ]}}}
}`

func TestQwant_ParsesMainlineRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(qwantFixture))
	}))
	defer srv.Close()

	prev := qwantSearchURL
	qwantSearchURL = srv.URL
	defer func() { qwantSearchURL = prev }()

	q := NewQwant()
	results, err := q.Search(context.Background(), models.SearchQuery{Q: "go"}, srv.Client(), models.DefaultEngineConfig())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, models.Text("a web snippet"), results[0].Content)

	vid, ok := results[1].Content.(models.Video)
	require.True(t, ok)
	assert.Equal(t, "65s", vid.Duration)
}

func TestQwant_NonSuccessStatusErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "error"}`))
	}))
	defer srv.Close()

	prev := qwantSearchURL
	qwantSearchURL = srv.URL
	defer func() { qwantSearchURL = prev }()

	q := NewQwant()
	_, err := q.Search(context.Background(), models.SearchQuery{Q: "go"}, srv.Client(), models.DefaultEngineConfig())
	assert.Error(t, err)
}
