package engines

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metasearch/engine/models"
)

func TestWikipedia_ResultsFromAPIOrdersByIndex(t *testing.T) {
	var body wikipediaAPIResponse
	body.Query.Pages = map[string]struct {
		Title     string `json:"title"`
		Extract   string `json:"extract"`
		Index     int    `json:"index"`
		Thumbnail struct {
			Source string `json:"source"`
		} `json:"thumbnail"`
	}{
		"2": {Title: "Second", Extract: "b", Index: 2},
		"1": {Title: "First", Extract: "a", Index: 1},
	}

	w := &Wikipedia{}
	results := w.resultsFromAPI("en", body)
	assert.Len(t, results, 2)
	assert.Equal(t, "First", results[0].Title)
	assert.Equal(t, "https://en.wikipedia.org/wiki/First", results[0].URL)
	assert.Equal(t, "Second", results[1].Title)
}

func TestWikipedia_ResultsFromAPIPrefersThumbnailAsImage(t *testing.T) {
	var body wikipediaAPIResponse
	page := struct {
		Title     string `json:"title"`
		Extract   string `json:"extract"`
		Index     int    `json:"index"`
		Thumbnail struct {
			Source string `json:"source"`
		} `json:"thumbnail"`
	}{Title: "Go (programming language)", Extract: "A language."}
	page.Thumbnail.Source = "https://upload.example/thumb.png"
	body.Query.Pages = map[string]struct {
		Title     string `json:"title"`
		Extract   string `json:"extract"`
		Index     int    `json:"index"`
		Thumbnail struct {
			Source string `json:"source"`
		} `json:"thumbnail"`
	}{"1": page}

	w := &Wikipedia{}
	results := w.resultsFromAPI("en", body)
	assert.Len(t, results, 1)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Go_(programming_language)", results[0].URL)
}

func TestWikipediaAPIParams(t *testing.T) {
	v := wikipediaAPIParams("golang", 20, 20)
	assert.Equal(t, "golang", v.Get("gsrsearch"))
	assert.Equal(t, "20", v.Get("gsrlimit"))
	assert.Equal(t, "20", v.Get("gsroffset"))
}

func TestSnippetToMarkdown_KeepsSearchMatchText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div class="searchresult">The <span class="searchmatch">Go</span> programming language</div>`))
	require.NoError(t, err)

	out := snippetToMarkdown(doc.Find(".searchresult"))
	assert.Contains(t, out, "Go")
	assert.Contains(t, out, "programming language")
}

func TestSnippetToMarkdown_FallsBackToPlainTextOnEmptyHTML(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<div class="searchresult"></div>`))
	require.NoError(t, err)

	assert.Equal(t, "", snippetToMarkdown(doc.Find(".searchresult")))
}

const wikipediaSearchFixture = `
<html><body>
<ul>
  <li class="mw-search-result">
    <div class="mw-search-result-heading"><a href="/wiki/Go_(programming_language)">Go (programming language)</a></div>
    <div class="searchresult">The <span class="searchmatch">Go</span> programming language was designed at Google.</div>
  </li>
  <li class="mw-search-result">
    <div class="mw-search-result-heading"><a href="https://en.wikipedia.org/wiki/Gopher">Gopher</a></div>
    <div class="searchresult">A burrowing rodent, also the mascot of the <span class="searchmatch">Go</span> language.</div>
  </li>
</ul>
</body></html>`

func TestParseWikipediaSearchHTML_ExtractsTitleURLAndSnippet(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(wikipediaSearchFixture))
	require.NoError(t, err)

	results := parseWikipediaSearchHTML(doc, "en")
	require.Len(t, results, 2)

	assert.Equal(t, "https://en.wikipedia.org/wiki/Go_(programming_language)", results[0].URL)
	assert.Equal(t, "Go (programming language)", results[0].Title)
	assert.Contains(t, string(results[0].Content.(models.Text)), "Go")
	assert.Contains(t, string(results[0].Content.(models.Text)), "designed at Google")

	assert.Equal(t, "https://en.wikipedia.org/wiki/Gopher", results[1].URL)
}
