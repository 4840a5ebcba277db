// AngelaMos | 2026
// realip.go

package middleware

import (
	"net"
	"net/http"

	"github.com/carterperez-dev/voice-to-ppt/internal/core"
)

// RealIP rewrites RemoteAddr to the address resolved by proxies, so
// core.ClientIP sees the end client behind a trusted load balancer. With no
// trusted proxies it is a pass-through.
func RealIP(proxies *core.TrustedProxies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if proxies.Empty() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ip := proxies.Resolve(r); ip != core.ClientIP(r) {
				r.RemoteAddr = net.JoinHostPort(ip, "0")
			}
			next.ServeHTTP(w, r)
		})
	}
}
