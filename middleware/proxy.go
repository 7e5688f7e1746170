package middleware

import (
	"net"
	"net/http"
	"strings"
)

// ProxyMiddleware берёт схему, хост и адрес клиента из X-Forwarded-* заголовков.
// Без trusted заголовки игнорируются: их может подставить сам клиент.
func ProxyMiddleware(trusted bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.URL.Scheme = "http"
			if r.TLS != nil {
				r.URL.Scheme = "https"
			}

			if trusted {
				applyForwarded(r)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func applyForwarded(r *http.Request) {
	switch proto := strings.ToLower(r.Header.Get("X-Forwarded-Proto")); proto {
	case "http", "https":
		r.URL.Scheme = proto
	}

	if host := r.Header.Get("X-Forwarded-Host"); host != "" {
		r.Host = host
		r.URL.Host = host
	}

	forwardedFor := r.Header.Get("X-Forwarded-For")
	if forwardedFor == "" {
		return
	}
	client, _, _ := strings.Cut(forwardedFor, ",")
	client = strings.TrimSpace(client)
	if net.ParseIP(client) != nil {
		r.RemoteAddr = client
	}
}
