package client

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"sort"
	"strings"
)

// Key builds the deterministic cache key for one query. Params are
// canonicalized before hashing so the same logical request produces
// the same key regardless of the order params were added in. The
// domain and action stay readable as prefixes so invalidation can
// match on them.
func Key(domain, action string, params url.Values) string {
	return domain + ":" + action + ":" + hashParams(params)
}

func hashParams(params url.Values) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		values := append([]string(nil), params[name]...)
		sort.Strings(values)
		for _, v := range values {
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(v)
			b.WriteByte('&')
		}
	}

	h := fnv.New64a()
	h.Write([]byte(b.String()))
	return fmt.Sprintf("%016x", h.Sum64())
}

// matchesDomain reports whether key belongs to domain. Keys always
// start with "<domain>:", so a plain prefix check never matches a
// sibling domain that shares a name prefix ("app" vs "app_group").
func matchesDomain(key, domain string) bool {
	return strings.HasPrefix(key, domain+":")
}
