package clientip

import (
	"context"
	"net"
	"net/http"
	"strings"
)

// forwardingHeaders are checked in order before falling back to RemoteAddr.
// Serverless platforms and CDNs put the original client in front.
var forwardingHeaders = []string{
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client's IP address from the request. Invalid header
// values are skipped. Returns an empty string when nothing parses.
func GetIP(r *http.Request) string {
	for _, h := range forwardingHeaders {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		for candidate := range strings.SplitSeq(v, ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}

type contextKey struct{}

func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}

// Middleware stores the client IP in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), GetIP(r))))
	})
}

// Key is a rate limiter key function keyed by client IP.
func Key(r *http.Request) string {
	if ip := FromContext(r.Context()); ip != "" {
		return "ip:" + ip
	}
	if ip := GetIP(r); ip != "" {
		return "ip:" + ip
	}
	return ""
}
