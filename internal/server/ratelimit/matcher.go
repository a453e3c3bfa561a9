package ratelimit

import (
	"slices"
	"strings"
)

// MatchEndpoint finds the limit for a request. Exact paths win over prefixes,
// and among prefixes the longest one wins. Nil means the default limit.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			if best == nil || len(c.Path) > len(best.Path) {
				best = c
			}
		}
	}
	return best
}

// exempt reports whether path is listed as unlimited.
func exempt(path string, exemptPaths []string) bool {
	return slices.Contains(exemptPaths, path)
}
