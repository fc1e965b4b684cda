package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/alimikegami/storefront-service/config"
	"golang.org/x/crypto/bcrypt"
)

// Admin is the single configured admin identity. An unset field never matches.
type Admin struct {
	email    string
	password string
	apiKey   string
}

func NewAdmin(cfg config.AdminConfig) *Admin {
	return &Admin{email: cfg.Email, password: cfg.Password, apiKey: cfg.APIKey}
}

// CheckCredentials compares a login attempt with the configured pair. The password may be
// configured as a bcrypt hash or as plain text.
func (a *Admin) CheckCredentials(email, password string) bool {
	if a.email == "" || a.password == "" {
		return false
	}

	emailOK := equal(strings.ToLower(strings.TrimSpace(email)), strings.ToLower(a.email))

	var passwordOK bool
	if strings.HasPrefix(a.password, "$2") {
		passwordOK = bcrypt.CompareHashAndPassword([]byte(a.password), []byte(password)) == nil
	} else {
		passwordOK = equal(password, a.password)
	}

	return emailOK && passwordOK
}

// CheckKey compares the shared admin key sent by API clients.
func (a *Admin) CheckKey(key string) bool {
	if a.apiKey == "" || key == "" {
		return false
	}
	return equal(key, a.apiKey)
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
