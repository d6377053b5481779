package engines

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"metasearch/engine/models"
)

var redditSearchURL = "https://www.reddit.com/search.json"

// Reddit queries Reddit's public search.json endpoint; Categories declares
// both "general" and "social media" since it's the one adapter here that
// plausibly serves a social-media-flavoured query.
type Reddit struct{}

func NewReddit() *Reddit { return &Reddit{} }

func (*Reddit) ID() string           { return "reddit" }
func (*Reddit) Name() string         { return "Reddit" }
func (*Reddit) Categories() []string { return []string{"general", "social media"} }

type redditResponse struct {
	Data struct {
		Children []struct {
			Data struct {
				Title     string `json:"title"`
				Permalink string `json:"permalink"`
				Selftext  string `json:"selftext"`
				URL       string `json:"url"`
				Thumbnail string `json:"thumbnail"`
				IsVideo   bool   `json:"is_video"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (*Reddit) Search(ctx context.Context, query models.SearchQuery, client *http.Client, _ models.EngineConfig) ([]models.SearchResult, error) {
	v := url.Values{}
	v.Set("q", query.Q)
	v.Set("limit", "20")
	if query.SafeSearch == models.SafeSearchOff {
		v.Set("include_over_18", "on")
	}

	var body redditResponse
	if err := fetchJSON(ctx, client, buildURL(redditSearchURL, v), nil, &body); err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(body.Data.Children))
	for _, child := range body.Data.Children {
		d := child.Data
		thumb := ""
		if strings.HasPrefix(d.Thumbnail, "http") {
			thumb = d.Thumbnail
		}

		var content models.ResultContent
		switch {
		case d.IsVideo:
			content = models.Video{Src: d.URL, Thumbnail: thumb}
		case thumb != "":
			content = models.Image{Src: d.URL, Thumbnail: thumb}
		default:
			content = models.Text(d.Selftext)
		}

		results = append(results, models.SearchResult{
			URL:     "https://www.reddit.com" + d.Permalink,
			Title:   d.Title,
			Content: content,
		})
	}

	return results, nil
}
