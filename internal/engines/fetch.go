// Package engines holds the concrete adapter.Adapter implementations for
// every engine id reserved in spec.md §6: dummy, duckduckgo, wikipedia,
// bing, google, reddit, qwant. They share this file's small HTTP-fetch
// helpers rather than each rolling its own net/http plumbing, the same way
// the teacher's crawler package centralises request/response handling
// behind one CollyFetcher rather than scattering it per caller.
package engines

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"metasearch/engine/models"
)

// userAgent identifies this aggregator to upstream engines, mirroring the
// Reddit/Qwant adapters' requirement (per the original implementation) for
// a descriptive, non-default User-Agent to avoid being rate-limited.
const userAgent = "Mozilla/5.0 (compatible; metasearch/0.1; +https://example.invalid/bot)"

// buildURL appends params to base's query string, returning base unchanged
// if it doesn't parse (the caller's literal constant is always valid, but
// failing closed rather than panicking keeps this safe for reuse).
func buildURL(base string, params url.Values) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.RawQuery = params.Encode()
	return u.String()
}

func doRequest(ctx context.Context, client *http.Client, method, rawURL string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, models.UnexpectedError("building request", err)
	}
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, models.NetworkError(err)
	}
	return resp, nil
}

// fetchHTML GETs rawURL and parses the body as HTML for goquery-based
// extraction.
func fetchHTML(ctx context.Context, client *http.Client, rawURL string) (*goquery.Document, error) {
	resp, err := doRequest(ctx, client, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, models.UnexpectedError(fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, rawURL), nil)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, models.ParsingError("parsing HTML response", err)
	}
	return doc, nil
}

// fetchJSON GETs rawURL with the given extra headers and decodes the body
// into out.
func fetchJSON(ctx context.Context, client *http.Client, rawURL string, headers map[string]string, out any) error {
	resp, err := doRequest(ctx, client, http.MethodGet, rawURL, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.UnexpectedError(fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, rawURL), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.NetworkError(err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return models.ParsingError("parsing JSON response", err)
	}
	return nil
}

// languageTag reduces a BCP-47-ish tag ("en-US") to its primary subtag
// ("en"), returning fallback unchanged when the query names no language —
// the normalisation the Google, Wikipedia and Qwant adapters use.
func languageTag(lang, fallback string) string {
	if lang == "" {
		return fallback
	}
	for i, r := range lang {
		if r == '-' || r == '_' {
			return lang[:i]
		}
	}
	return lang
}
