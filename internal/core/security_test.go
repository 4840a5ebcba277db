// AngelaMos | 2026
// security_test.go

package core

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretsEqual(t *testing.T) {
	assert.True(t, SecretsEqual("hunter2", "hunter2"))
	assert.False(t, SecretsEqual("hunter2", "hunter3"))
	assert.False(t, SecretsEqual("", "hunter2"))
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		want    string
	}{
		{name: "remote addr", remote: "10.0.0.7:5123", want: "10.0.0.7"},
		{name: "mapped ipv4", remote: "[::ffff:10.0.0.7]:5123", want: "10.0.0.7"},
		{
			name:    "forwarded header ignored",
			remote:  "172.16.0.1:80",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.9"},
			want:    "172.16.0.1",
		},
		{
			name:    "real ip ignored",
			remote:  "172.16.0.1:80",
			headers: map[string]string{"X-Real-IP": "198.51.100.4"},
			want:    "172.16.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(r))
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	p, err := ParseTrustedProxies([]string{"10.0.0.0/8", " 192.0.2.10 ", "", "2001:db8::1"})
	require.NoError(t, err)
	assert.True(t, p.Contains("10.20.30.40"))
	assert.True(t, p.Contains("::ffff:10.1.1.1"))
	assert.True(t, p.Contains("192.0.2.10"))
	assert.False(t, p.Contains("192.0.2.11"))
	assert.True(t, p.Contains("2001:db8::1"))
	assert.False(t, p.Contains("not-an-ip"))

	_, err = ParseTrustedProxies([]string{"10.0.0.0/33"})
	assert.Error(t, err)
	_, err = ParseTrustedProxies([]string{"proxy.local"})
	assert.Error(t, err)

	var none *TrustedProxies
	assert.True(t, none.Empty())
	assert.False(t, none.Contains("10.0.0.1"))
}

func TestTrustedProxiesResolve(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		remote string
		xff    []string
		realIP string
		want   string
	}{
		{name: "untrusted peer keeps socket address", remote: "203.0.113.7:5123", xff: []string{"198.51.100.1"}, want: "203.0.113.7"},
		{name: "proxy appended hop", remote: "10.0.0.2:80", xff: []string{"198.51.100.1"}, want: "198.51.100.1"},
		{
			name:   "client prepended hops skipped",
			remote: "10.0.0.2:80",
			xff:    []string{"1.2.3.4, 5.6.7.8, 198.51.100.1, 10.0.0.3"},
			want:   "198.51.100.1",
		},
		{name: "repeated headers joined", remote: "10.0.0.2:80", xff: []string{"1.2.3.4", "198.51.100.1"}, want: "198.51.100.1"},
		{name: "all hops trusted", remote: "10.0.0.2:80", xff: []string{"10.0.0.9"}, want: "10.0.0.2"},
		{name: "garbage hop", remote: "10.0.0.2:80", xff: []string{"198.51.100.1, nonsense"}, want: "10.0.0.2"},
		{name: "real ip from proxy", remote: "10.0.0.2:80", realIP: "198.51.100.4", want: "198.51.100.4"},
		{name: "real ip from client", remote: "203.0.113.7:5123", realIP: "198.51.100.4", want: "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for _, v := range tt.xff {
				r.Header.Add("X-Forwarded-For", v)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			assert.Equal(t, tt.want, proxies.Resolve(r))
		})
	}
}
