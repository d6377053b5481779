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

var bingSearchURL = "https://www.bing.com/search"

// Bing scrapes Bing's HTML result page with goquery, the markup-extraction
// library the teacher already depends on for its own content processor.
type Bing struct{}

func NewBing() *Bing { return &Bing{} }

func (*Bing) ID() string           { return "bing" }
func (*Bing) Name() string         { return "Bing" }
func (*Bing) Categories() []string { return []string{"general"} }

func (*Bing) Search(ctx context.Context, query models.SearchQuery, client *http.Client, _ models.EngineConfig) ([]models.SearchResult, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	first := (page-1)*10 + 1

	v := url.Values{}
	v.Set("q", query.Q)
	v.Set("first", strconv.Itoa(first))
	switch query.SafeSearch {
	case models.SafeSearchModerate:
		v.Set("adlt", "moderate")
	case models.SafeSearchStrict:
		v.Set("adlt", "strict")
	default:
		v.Set("adlt", "off")
	}

	doc, err := fetchHTML(ctx, client, buildURL(bingSearchURL, v))
	if err != nil {
		return nil, err
	}

	var results []models.SearchResult
	doc.Find("li.b_algo").Each(func(_ int, s *goquery.Selection) {
		titleSel := s.Find("h2 > a").First()
		href, ok := titleSel.Attr("href")
		if !ok || href == "" {
			return
		}
		title := strings.TrimSpace(titleSel.Text())

		snippet := strings.TrimSpace(s.Find(".b_caption p").First().Text())
		if snippet == "" {
			snippet = strings.TrimSpace(s.Find(".b_algo_text").First().Text())
		}

		results = append(results, models.SearchResult{
			URL:     href,
			Title:   title,
			Content: models.Text(snippet),
		})
	})

	return results, nil
}
