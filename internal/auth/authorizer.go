package auth

import "net/http"

// AdminKeyHeader carries the shared admin secret used by API clients.
const AdminKeyHeader = "x-admin-key"

// Authorizer is the single admin capability check: a request is an admin request when it holds a
// valid session token or the shared admin key.
type Authorizer struct {
	sessions *Sessions
	admin    *Admin
}

func NewAuthorizer(sessions *Sessions, admin *Admin) *Authorizer {
	return &Authorizer{sessions: sessions, admin: admin}
}

func (a *Authorizer) IsAdmin(r *http.Request) bool {
	if a.sessions.VerifyRequest(r) {
		return true
	}
	return a.admin.CheckKey(r.Header.Get(AdminKeyHeader))
}
