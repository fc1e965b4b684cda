package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alimikegami/storefront-service/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizer_IsAdmin(t *testing.T) {
	sessions := NewSessions(config.JWTConfig{Secret: "test-secret", TTL: time.Hour}, false)
	a := NewAuthorizer(sessions, NewAdmin(config.AdminConfig{APIKey: "k-123"}))

	token, _, err := sessions.Issue()
	require.NoError(t, err)

	testCases := []struct {
		Name     string
		Prepare  func(r *http.Request)
		Expected bool
	}{
		{Name: "anonymous", Prepare: func(r *http.Request) {}, Expected: false},
		{Name: "admin key", Prepare: func(r *http.Request) { r.Header.Set(AdminKeyHeader, "k-123") }, Expected: true},
		{Name: "wrong admin key", Prepare: func(r *http.Request) { r.Header.Set(AdminKeyHeader, "nope") }, Expected: false},
		{Name: "session cookie", Prepare: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: CookieName, Value: token}) }, Expected: true},
		{Name: "bearer token", Prepare: func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, Expected: true},
		{Name: "tampered cookie", Prepare: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: CookieName, Value: token + "x"}) }, Expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
			tc.Prepare(req)
			assert.Equal(t, tc.Expected, a.IsAdmin(req))
		})
	}
}
