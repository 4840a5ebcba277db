// AngelaMos | 2026
// security.go

package core

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// SecretsEqual compares two shared secrets in constant time. Both sides are
// hashed first so the comparison does not leak the expected length.
func SecretsEqual(provided, expected string) bool {
	a := sha256.Sum256([]byte(provided))
	b := sha256.Sum256([]byte(expected))
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

// ClientIP returns the socket peer of r. Forwarding headers are ignored
// here; RealIP middleware rewrites RemoteAddr when the peer is a trusted
// proxy. IPv4-mapped IPv6 prefixes are stripped.
func ClientIP(r *http.Request) string {
	return peerHost(r.RemoteAddr)
}

func peerHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}
	return strings.TrimPrefix(host, "::ffff:")
}

// TrustedProxies is the set of networks allowed to report a client address
// through X-Forwarded-For or X-Real-IP. The zero value trusts nobody.
type TrustedProxies struct {
	nets []*net.IPNet
}

// ParseTrustedProxies accepts CIDRs and bare addresses.
func ParseTrustedProxies(entries []string) (*TrustedProxies, error) {
	p := &TrustedProxies{}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !strings.Contains(entry, "/") {
			ip := net.ParseIP(entry)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", entry)
			}
			bits := 8 * net.IPv6len
			if ip.To4() != nil {
				ip = ip.To4()
				bits = 8 * net.IPv4len
			}
			p.nets = append(p.nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
		}
		p.nets = append(p.nets, n)
	}
	return p, nil
}

func (p *TrustedProxies) Empty() bool {
	return p == nil || len(p.nets) == 0
}

func (p *TrustedProxies) Contains(addr string) bool {
	if p.Empty() {
		return false
	}
	ip := net.ParseIP(strings.TrimPrefix(addr, "::ffff:"))
	if ip == nil {
		return false
	}
	for _, n := range p.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// Resolve returns the client address for r. Headers are only read when the
// socket peer is trusted, and X-Forwarded-For is walked from the right so
// the first untrusted hop wins. Hops a client prepends never get that far.
func (p *TrustedProxies) Resolve(r *http.Request) string {
	peer := ClientIP(r)
	if !p.Contains(peer) {
		return peer
	}

	if xff := r.Header.Values("X-Forwarded-For"); len(xff) > 0 {
		hops := strings.Split(strings.Join(xff, ","), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimPrefix(strings.TrimSpace(hops[i]), "::ffff:")
			if net.ParseIP(hop) == nil {
				break
			}
			if !p.Contains(hop) {
				return hop
			}
		}
		return peer
	}

	if realIP := strings.TrimPrefix(strings.TrimSpace(r.Header.Get("X-Real-IP")), "::ffff:"); net.ParseIP(realIP) != nil {
		return realIP
	}

	return peer
}
