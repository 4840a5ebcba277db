// AngelaMos | 2026
// fingerprint.go

package entitlement

import (
	"encoding/hex"
	"net/http"

	"golang.org/x/crypto/blake2b"

	"github.com/carterperez-dev/voice-to-ppt/internal/core"
)

const (
	userAgentPrefix = 100
	fingerprintSize = 16
)

// Fingerprint identifies an anonymous caller by address and user agent. The
// digest is one-way; neither input can be recovered from it.
func Fingerprint(ip, userAgent string) string {
	ua := []rune(userAgent)
	if len(ua) > userAgentPrefix {
		ua = ua[:userAgentPrefix]
	}

	//nolint:errcheck // fixed valid size, no key
	h, _ := blake2b.New(fingerprintSize, nil)
	h.Write([]byte(ip + ":" + string(ua)))
	return hex.EncodeToString(h.Sum(nil))
}

func RequestFingerprint(r *http.Request) string {
	return Fingerprint(core.ClientIP(r), r.UserAgent())
}
