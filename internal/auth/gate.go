package auth

import "strings"

// LoginPath is where unauthenticated visitors of protected pages are sent.
const LoginPath = "/admin-login"

var protectedPrefixes = []string{"/dashboard", "/admin"}

// IsProtectedPath matches whole path segments, so "/admin/products" is protected and
// "/admin-login" is not.
func IsProtectedPath(path string) bool {
	for _, prefix := range protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// RedirectFor returns the login path when a request for path must be redirected.
func RedirectFor(path string, validSession bool) (string, bool) {
	if IsProtectedPath(path) && !validSession {
		return LoginPath, true
	}
	return "", false
}
