// Package requestmeta resolves request scheme and same-origin proof.
package requestmeta

import (
	"net/http"
	"net/url"
	"strings"
)

// SchemePolicy controls how the request scheme is resolved.
//
// X-Forwarded-Proto is only consulted when TrustForwardedProto is set.
type SchemePolicy struct {
	TrustForwardedProto bool
}

// IsHTTPS reports whether r should be treated as HTTPS under policy.
func (p SchemePolicy) IsHTTPS(r *http.Request) bool {
	return p.Scheme(r) == "https"
}

// Scheme returns "http" or "https" for r, or "" for a nil request.
func (p SchemePolicy) Scheme(r *http.Request) string {
	if r == nil {
		return ""
	}
	if p.TrustForwardedProto {
		switch forwarded := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); forwarded {
		case "http", "https":
			return forwarded
		}
	}
	if r.URL != nil {
		switch scheme := strings.ToLower(r.URL.Scheme); scheme {
		case "http", "https":
			return scheme
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// HasSameOriginProof reports whether the Origin header, or failing that the
// Referer header, names the same scheme, host and port as r.
func (p SchemePolicy) HasSameOriginProof(r *http.Request) bool {
	if r == nil {
		return false
	}
	want := origin{scheme: p.Scheme(r)}
	want.host, want.port = splitHost(r.Host)
	if want.host == "" && r.URL != nil {
		want.host, want.port = splitHost(r.URL.Host)
	}
	if want.host == "" {
		return false
	}
	if want.port == "" {
		want.port = defaultPort(want.scheme)
	}

	raw := strings.TrimSpace(r.Header.Get("Origin"))
	if raw == "" {
		raw = strings.TrimSpace(r.Header.Get("Referer"))
	}
	if raw == "" {
		return false
	}
	got, ok := parseOrigin(raw)
	return ok && got == want
}

type origin struct {
	scheme string
	host   string
	port   string
}

func parseOrigin(raw string) (origin, bool) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return origin{}, false
	}
	o := origin{
		scheme: strings.ToLower(parsed.Scheme),
		host:   strings.ToLower(parsed.Hostname()),
		port:   parsed.Port(),
	}
	if o.port == "" {
		o.port = defaultPort(o.scheme)
	}
	if o.scheme == "" || o.host == "" || o.port == "" {
		return origin{}, false
	}
	return o, true
}

func splitHost(rawHost string) (string, string) {
	parsed, err := url.Parse("//" + strings.TrimSpace(rawHost))
	if err != nil {
		return "", ""
	}
	return strings.ToLower(parsed.Hostname()), parsed.Port()
}

func defaultPort(scheme string) string {
	switch scheme {
	case "https":
		return "443"
	case "http":
		return "80"
	default:
		return ""
	}
}
