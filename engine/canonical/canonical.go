// Package canonical implements the URL canonicaliser from spec.md §4.E:
// the normal form used both as the dedup key and as a merged result's URL.
package canonical

import (
	"net/url"
	"strings"
)

// trackingParams are dropped verbatim (exact key match, case-sensitive).
var trackingParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"fbclid":       {},
	"gclid":        {},
	"msclkid":      {},
}

// Canonicalise normalises u for dedup-keying. On a parse failure it returns
// u unchanged, per spec.md §4.E rule 1.
//
// Canonicalise is idempotent: Canonicalise(Canonicalise(u)) == Canonicalise(u)
// for every parsable u, since every rule it applies (lowercasing, fragment
// removal, tracking-param removal, trailing-slash normalisation) is itself
// a fixed point once applied.
func Canonicalise(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""

	if u.RawQuery != "" {
		u.RawQuery = stripTrackingParams(u.RawQuery)
	}
	if u.RawQuery == "" {
		u.ForceQuery = false
	}

	if u.Opaque == "" && u.Host != "" && u.Path == "" {
		u.Path = "/"
	}

	return u.String()
}

// stripTrackingParams removes tracking keys from a raw query string while
// preserving the relative order of the params that remain. url.Values is
// not used directly because it is an unordered map; ordering is
// reconstructed by walking the raw "k=v&k=v" pairs.
func stripTrackingParams(rawQuery string) string {
	pairs := strings.Split(rawQuery, "&")
	kept := pairs[:0:0]
	for _, pair := range pairs {
		if pair == "" {
			continue
		}
		key := pair
		if idx := strings.IndexByte(pair, '='); idx >= 0 {
			key = pair[:idx]
		}
		if unescaped, err := url.QueryUnescape(key); err == nil {
			key = unescaped
		}
		if _, blocked := trackingParams[key]; blocked {
			continue
		}
		kept = append(kept, pair)
	}
	return strings.Join(kept, "&")
}
