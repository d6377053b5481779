package engines

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"metasearch/engine/models"
)

var qwantSearchURL = "https://api.qwant.com/v3/search/web"

// Qwant queries Qwant's public JSON web-search API.
type Qwant struct{}

func NewQwant() *Qwant { return &Qwant{} }

func (*Qwant) ID() string           { return "qwant" }
func (*Qwant) Name() string         { return "Qwant" }
func (*Qwant) Categories() []string { return []string{"general"} }

type qwantResponse struct {
	Status string `json:"status"`
	Data   struct {
		Result struct {
			Items struct {
				Mainline []struct {
					Type  string `json:"type"`
					Items []struct {
						Title     string `json:"title"`
						URL       string `json:"url"`
						Desc      string `json:"desc"`
						Thumbnail string `json:"thumbnail"`
						Duration  int64  `json:"duration"`
					} `json:"items"`
				} `json:"mainline"`
			} `json:"items"`
		} `json:"result"`
	} `json:"data"`
}

func (*Qwant) Search(ctx context.Context, query models.SearchQuery, client *http.Client, _ models.EngineConfig) ([]models.SearchResult, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	const count = 10
	offset := (page - 1) * count

	v := url.Values{}
	v.Set("q", query.Q)
	v.Set("count", strconv.Itoa(count))
	v.Set("offset", strconv.Itoa(offset))
	v.Set("locale", languageTag(query.Language, "en_US"))
	v.Set("safesearch", strconv.Itoa(int(query.SafeSearch)))

	var body qwantResponse
	if err := fetchJSON(ctx, client, buildURL(qwantSearchURL, v), nil, &body); err != nil {
		return nil, err
	}
	if body.Status != "success" {
		return nil, models.UnexpectedError("qwant API reported status "+body.Status, nil)
	}

	var results []models.SearchResult
	for _, row := range body.Data.Result.Items.Mainline {
		if row.Type != "web" && row.Type != "videos" {
			continue
		}
		for _, item := range row.Items {
			var content models.ResultContent
			if row.Type == "videos" {
				duration := ""
				if item.Duration > 0 {
					duration = fmt.Sprintf("%ds", item.Duration/1000)
				}
				content = models.Video{Src: item.URL, Thumbnail: item.Thumbnail, Duration: duration}
			} else {
				content = models.Text(item.Desc)
			}

			results = append(results, models.SearchResult{
				URL:     item.URL,
				Title:   item.Title,
				Content: content,
			})
		}
	}

	return results, nil
}
