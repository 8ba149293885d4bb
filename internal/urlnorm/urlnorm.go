// Package urlnorm strips tracking parameters from article links so that
// the same story shared through different channels dedups to one item.
package urlnorm

import (
	"net/url"
	"strings"
)

// Exact-match tracking parameter names, lowercase.
var trackingParams = map[string]struct{}{
	"fbclid": {},
	"gclid":  {},
	"igshid": {},
	"mc_cid": {},
	"mc_eid": {},
}

// Normalize removes known tracking query parameters (utm_* prefixes and
// a fixed name set), preserving the relative order of the survivors.
// Normalization is best-effort: any parse failure returns the input
// unchanged.
func Normalize(raw string) string {
	if raw == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if u.RawQuery == "" {
		return u.String()
	}

	// url.Values would lose parameter order, so filter the raw query
	// segment by segment.
	segments := strings.Split(u.RawQuery, "&")
	kept := segments[:0]
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		key := seg
		if i := strings.IndexByte(seg, '='); i >= 0 {
			key = seg[:i]
		}
		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}
		if isTracking(strings.ToLower(key)) {
			continue
		}
		kept = append(kept, seg)
	}
	u.RawQuery = strings.Join(kept, "&")
	return u.String()
}

func isTracking(key string) bool {
	if strings.HasPrefix(key, "utm_") {
		return true
	}
	_, ok := trackingParams[key]
	return ok
}
