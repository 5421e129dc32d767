package pkg

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the best guess of the caller address, preferring the
// proxy headers set by the ingress. Ports are stripped.
func ClientIP(r *http.Request) string {
	addr := r.Header.Get("X-Real-Ip")
	if addr == "" {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			addr = strings.TrimSpace(strings.Split(fwd, ",")[0])
		}
	}
	if addr == "" {
		addr = r.RemoteAddr
	}

	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	return addr
}
