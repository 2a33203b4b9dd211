package httpapi

import (
	"net"
	"net/http"
	"strings"
)

var clientIPHeaders = []string{
	"Fly-Client-IP",
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// resolveClientIP prefers proxy headers over the socket address.
func resolveClientIP(r *http.Request) string {
	for _, header := range clientIPHeaders {
		if ip := normalizeIP(r.Header.Get(header)); ip != "" {
			return ip
		}
	}
	return normalizeIP(r.RemoteAddr)
}

func normalizeIP(raw string) string {
	value, _, _ := strings.Cut(strings.TrimSpace(raw), ",")
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(value); err == nil {
		value = host
	}

	parsed := net.ParseIP(value)
	if parsed == nil {
		return ""
	}
	return parsed.String()
}
