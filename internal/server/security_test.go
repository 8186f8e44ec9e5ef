package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginChecker_AllowAll(t *testing.T) {
	t.Parallel()

	oc := NewOriginChecker([]string{"*"})
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	assert.True(t, oc.Check(req))
}

func TestOriginChecker_Whitelist(t *testing.T) {
	t.Parallel()

	oc := NewOriginChecker([]string{"https://game.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Origin", "https://game.example.com")
	assert.True(t, oc.Check(req))

	// Origin matching is case-insensitive.
	req.Header.Set("Origin", "https://GAME.example.com")
	assert.True(t, oc.Check(req))

	req.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, oc.Check(req))
}

func TestOriginChecker_NoOriginHeader(t *testing.T) {
	t.Parallel()

	// Native clients send no Origin header and must pass.
	oc := NewOriginChecker([]string{"https://game.example.com"})
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.True(t, oc.Check(req))
}

func TestMessageRateLimiter_AllowsUnderLimit(t *testing.T) {
	t.Parallel()

	ml := NewMessageRateLimiter(5)
	for i := 0; i < 5; i++ {
		assert.True(t, ml.AllowMessage("c1"))
	}
}

func TestMessageRateLimiter_BlocksOverLimit(t *testing.T) {
	t.Parallel()

	ml := NewMessageRateLimiter(3)
	for i := 0; i < 3; i++ {
		assert.True(t, ml.AllowMessage("c1"))
	}
	assert.False(t, ml.AllowMessage("c1"))
	assert.False(t, ml.AllowMessage("c1"))
	assert.Equal(t, 2, ml.WarningCount("c1"))

	// Other clients are unaffected.
	assert.True(t, ml.AllowMessage("c2"))
}

func TestMessageRateLimiter_RemoveClient(t *testing.T) {
	t.Parallel()

	ml := NewMessageRateLimiter(1)
	assert.True(t, ml.AllowMessage("c1"))
	assert.False(t, ml.AllowMessage("c1"))

	ml.RemoveClient("c1")
	assert.Equal(t, 0, ml.WarningCount("c1"))
	assert.True(t, ml.AllowMessage("c1"))
}

func TestGetClientIP(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	assert.Equal(t, "10.0.0.1", GetClientIP(req))

	req.Header.Set("X-Real-IP", "203.0.113.7")
	assert.Equal(t, "203.0.113.7", GetClientIP(req))

	// X-Forwarded-For wins, first hop is the client.
	req.Header.Set("X-Forwarded-For", "198.51.100.2, 10.0.0.1")
	assert.Equal(t, "198.51.100.2", GetClientIP(req))
}
