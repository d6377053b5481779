package engines

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"metasearch/engine/models"
)

// duckduckgoSearchURL is DuckDuckGo's HTML-only (no-JS) result endpoint,
// the same one the original implementation posts its query form to.
var duckduckgoSearchURL = "https://html.duckduckgo.com/html/"

// DuckDuckGo scrapes the HTML-only DuckDuckGo result page with Colly, the
// same fetch library the teacher's crawler package builds on
// (engine/internal/crawler/colly_fetcher.go), here driven synchronously for
// a single request/response cycle instead of a multi-page crawl.
type DuckDuckGo struct{}

func NewDuckDuckGo() *DuckDuckGo { return &DuckDuckGo{} }

func (*DuckDuckGo) ID() string           { return "duckduckgo" }
func (*DuckDuckGo) Name() string         { return "DuckDuckGo" }
func (*DuckDuckGo) Categories() []string { return []string{"general"} }

func (*DuckDuckGo) Search(ctx context.Context, query models.SearchQuery, _ *http.Client, _ models.EngineConfig) ([]models.SearchResult, error) {
	c := colly.NewCollector(colly.UserAgent(userAgent))
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 {
			c.SetRequestTimeout(remaining)
		}
	}

	var results []models.SearchResult
	var fetchErr error

	c.OnHTML("div#links > div.web-result", func(e *colly.HTMLElement) {
		titleSel := e.DOM.Find("h2 > a").First()
		href, _ := titleSel.Attr("href")
		if href == "" {
			return
		}
		title := strings.TrimSpace(titleSel.Text())
		content := strings.TrimSpace(e.ChildText("a.result__snippet"))

		results = append(results, models.SearchResult{
			URL:     href,
			Title:   title,
			Content: models.Text(content),
		})
	})

	c.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	form := map[string]string{
		"q":  query.Q,
		"b":  "",
		"kl": "wt-wt",
	}
	if err := c.Post(duckduckgoSearchURL, form); err != nil {
		return nil, models.NetworkError(err)
	}
	if fetchErr != nil {
		return nil, models.NetworkError(fetchErr)
	}

	return results, nil
}
