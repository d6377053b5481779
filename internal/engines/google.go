package engines

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"metasearch/engine/models"
)

var googleSearchURL = "https://www.google.com/search"

// Google scrapes Google's HTML result page with goquery. The original
// implementation this spec was distilled from left this engine as a
// hardcoded mock pending "actual scraping or API calls" — this adapter
// supplies that, extracting Google's div.g/h3/snippet result blocks with the
// same selector-driven shape as the other goquery-based adapters here.
type Google struct{}

func NewGoogle() *Google { return &Google{} }

func (*Google) ID() string           { return "google" }
func (*Google) Name() string         { return "Google" }
func (*Google) Categories() []string { return []string{"general"} }

func (*Google) Search(ctx context.Context, query models.SearchQuery, client *http.Client, _ models.EngineConfig) ([]models.SearchResult, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * 10

	v := url.Values{}
	v.Set("q", query.Q)
	v.Set("start", strconv.Itoa(start))
	v.Set("hl", languageTag(query.Language, "en"))
	if query.SafeSearch != models.SafeSearchOff {
		v.Set("safe", "active")
	}

	doc, err := fetchHTML(ctx, client, buildURL(googleSearchURL, v))
	if err != nil {
		return nil, err
	}

	var results []models.SearchResult
	doc.Find("div.g").Each(func(_ int, s *goquery.Selection) {
		linkSel := s.Find("a[href]").First()
		href, ok := linkSel.Attr("href")
		if !ok || href == "" || !strings.HasPrefix(href, "http") {
			return
		}
		title := strings.TrimSpace(s.Find("h3").First().Text())
		if title == "" {
			return
		}
		snippet := strings.TrimSpace(s.Find(".VwiC3b, .IsZvec").First().Text())

		results = append(results, models.SearchResult{
			URL:     href,
			Title:   title,
			Content: models.Text(snippet),
		})
	})

	return results, nil
}
