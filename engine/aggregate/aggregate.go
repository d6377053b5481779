// Package aggregate implements the Aggregator from spec.md §4.F: host
// blocklist filtering, text sanitisation, URL canonicalisation, dedup
// merge, and final sort.
package aggregate

import (
	"math"
	"net/url"
	"sort"
	"strings"

	"github.com/kennygrant/sanitize"

	"metasearch/engine/canonical"
	"metasearch/engine/models"
)

// Aggregator merges the flat per-engine result lists the registry harvests
// into one deduplicated, sorted collection. It owns only its transient
// merge map for the lifetime of one Merge call — nothing persists between
// calls.
type Aggregator struct {
	blocklist []string
}

// New builds an Aggregator with the given host blocklist: a result is
// dropped when its URL's host contains any blocklist entry as a substring.
func New(blocklist []string) *Aggregator {
	cp := make([]string, len(blocklist))
	copy(cp, blocklist)
	return &Aggregator{blocklist: cp}
}

// Merge runs the pipeline in spec.md §4.F over results, in order, and
// returns the merged collection sorted by descending score.
func (a *Aggregator) Merge(results []models.SearchResult) []models.SearchResult {
	merged := make(map[string]*models.SearchResult, len(results))
	order := make([]string, 0, len(results))

	for _, r := range results {
		if a.blocked(r.URL) {
			continue
		}
		r.Content = sanitiseContent(r.Content)

		key := canonical.Canonicalise(r.URL)

		if existing, ok := merged[key]; ok {
			existing.Score += r.Score
			for _, eng := range r.Engines {
				existing.AddEngine(eng)
			}
			continue
		}

		r.URL = key
		copyResult := r
		merged[key] = &copyResult
		order = append(order, key)
	}

	out := make([]models.SearchResult, 0, len(order))
	for _, key := range order {
		out = append(out, *merged[key])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return greaterScore(out[i].Score, out[j].Score)
	})

	return out
}

// greaterScore orders descending by score, treating NaN as equal to
// everything (so a NaN score never moves relative to its insertion
// position — sort.SliceStable leaves ties in place).
func greaterScore(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return a > b
}

func (a *Aggregator) blocked(rawURL string) bool {
	if len(a.blocklist) == 0 {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, entry := range a.blocklist {
		if entry != "" && strings.Contains(host, strings.ToLower(entry)) {
			return true
		}
	}
	return false
}

// sanitiseContent applies the black-box clean(text) -> safe_text contract
// of spec.md §1/§4.F.2 to Text content; other ResultContent variants carry
// no free-form HTML and pass through unchanged.
func sanitiseContent(c models.ResultContent) models.ResultContent {
	text, ok := c.(models.Text)
	if !ok {
		return c
	}
	return models.Text(cleanHTML(string(text)))
}

// cleanHTML removes active HTML (script/style/event-handler attributes)
// while preserving visible text and a safe set of inline markup, using
// kennygrant/sanitize's allow-listing tokenizer.
func cleanHTML(raw string) string {
	safe, err := sanitize.HTMLAllowing(raw)
	if err != nil {
		// Fall back to stripping everything rather than letting unsafe
		// markup leak through on a parse error.
		return sanitize.HTML(raw)
	}
	return safe
}
