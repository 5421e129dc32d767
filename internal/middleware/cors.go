package middleware

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

// user agents of the kraft mobile clients, lowercased
var allowedUserAgentPrefixes = []string{
	"kraft/",
	"expo/",
	"okhttp/",
	"curl/",
	"test-agent",
}

func Cors(allowedOrigins []string) func(next http.Handler) http.Handler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			userAgent := strings.ToLower(r.Header.Get("User-Agent"))

			if !origins[origin] && !hasAnyPrefix(userAgent, allowedUserAgentPrefixes) {
				log.Warnf("CORS: origin not allowed for path [%s], origin [%s], UA [%s]", r.URL.Path, origin, userAgent)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Headers",
				"Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-KRAFT-TOKEN",
			)
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")

			next.ServeHTTP(w, r)
		})
	}
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
