package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alimikegami/storefront-service/config"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "admin_token"
	RoleAdmin  = "admin"
)

var errNoSecret = errors.New("jwt secret is not configured")

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies admin session tokens. There is no revocation list: a token is
// valid until it expires or the cookie is dropped.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewSessions(cfg config.JWTConfig, secureCookie bool) *Sessions {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Sessions{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		secure: secureCookie,
		now:    time.Now,
	}
}

func (s *Sessions) Issue() (token string, expiresAt time.Time, err error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, errNoSecret
	}

	now := s.now()
	expiresAt = now.Add(s.ttl)
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	return token, expiresAt, err
}

// Verify reports whether token carries a valid signature, an unexpired exp and the admin role.
// It never returns an error; any failure is simply "not an admin".
func (s *Sessions) Verify(token string) bool {
	if token == "" || len(s.secret) == 0 {
		return false
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return false
	}

	return claims.Role == RoleAdmin
}

// VerifyRequest checks the session carried by r, either as the admin cookie or a bearer token.
func (s *Sessions) VerifyRequest(r *http.Request) bool {
	return s.Verify(TokenFromRequest(r))
}

func (s *Sessions) Cookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *Sessions) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}

	if h := r.Header.Get("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}

	return ""
}
