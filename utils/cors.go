package utils

import (
	"net/http"
	"net/netip"
	"net/url"
	"strings"
)

// OriginPolicy decides which browser origins get CORS headers.
type OriginPolicy string

const (
	// OriginAny reflects every origin, matching a permissive cors() setup.
	OriginAny OriginPolicy = "any"
	// OriginPrivate only trusts LAN and loopback origins.
	OriginPrivate OriginPolicy = "private"
)

var privatePrefixes = []netip.Prefix{
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("127.0.0.0/8"),
	netip.MustParsePrefix("169.254.0.0/16"), // link-local IPv4
	netip.MustParsePrefix("::1/128"),
	netip.MustParsePrefix("fe80::/10"), // link-local IPv6
	netip.MustParsePrefix("fc00::/7"),  // unique local IPv6
}

// Allows reports whether origin passes the policy.
func (p OriginPolicy) Allows(origin string) bool {
	if origin == "" {
		return false
	}
	if p == OriginPrivate {
		return IsAllowedOrigin(origin)
	}
	return true
}

// IsAllowedOrigin accepts localhost, .local and single-label hostnames, and
// private or link-local IPs. Everything else is treated as public.
func IsAllowedOrigin(origin string) bool {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}

	hostname := parsed.Hostname()
	switch {
	case hostname == "localhost":
		return true
	case strings.HasSuffix(hostname, ".local"):
		return true
	}

	if addr, err := netip.ParseAddr(hostname); err == nil {
		addr = addr.Unmap()
		for _, prefix := range privatePrefixes {
			if prefix.Contains(addr) {
				return true
			}
		}
		return false
	}

	// Single-label hostnames are LAN names
	return !strings.Contains(hostname, ".")
}

// CORSMiddleware adds CORS headers for allowed origins and answers preflights.
func CORSMiddleware(policy OriginPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if policy.Allows(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
