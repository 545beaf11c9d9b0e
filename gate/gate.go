// Package gate redirects the requests for the admin pages and the login page
// depending on whether the client holds a session cookie.
//
// The gate only checks that the cookie is present. It does not verify its
// signature nor its expiry: a forged or expired cookie passes the gate and is
// rejected later by the session checks of the admin pages and actions.
package gate

import (
	"net/http"
	"strings"

	"github.com/helpinghands/ngo-backend/auth"
)

const (
	// AdminPath is the root of the admin pages.
	AdminPath = "/admin"
	// LoginPath is the login page.
	LoginPath = "/login"
)

// Decision is the outcome of the gate for a request.
type Decision int

const (
	// Continue lets the request reach the requested page.
	Continue Decision = iota
	// RedirectLogin sends the client to the login page.
	RedirectLogin
	// RedirectAdmin sends the client to the admin root.
	RedirectAdmin
)

func (d Decision) String() string {
	switch d {
	case RedirectLogin:
		return "redirect-login"
	case RedirectAdmin:
		return "redirect-admin"
	default:
		return "continue"
	}
}

// Decide returns the decision for a request to path, hasSession reports
// whether the request carries a session cookie.
func Decide(path string, hasSession bool) Decision {
	switch {
	case isAdminPath(path) && !hasSession:
		return RedirectLogin
	case path == LoginPath && hasSession:
		return RedirectAdmin
	default:
		return Continue
	}
}

// isAdminPath matches /admin and every path below it.
func isAdminPath(path string) bool {
	return path == AdminPath || strings.HasPrefix(path, AdminPath+"/")
}

// hasSessionCookie reports whether the request carries a non empty session
// cookie.
func hasSessionCookie(r *http.Request) bool {
	cookie, err := r.Cookie(auth.CookieName)
	return err == nil && cookie.Value != ""
}

// Middleware applies the gate to every request, redirecting with a 307
// Temporary Redirect.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch Decide(r.URL.Path, hasSessionCookie(r)) {
		case RedirectLogin:
			http.Redirect(w, r, LoginPath, http.StatusTemporaryRedirect)
		case RedirectAdmin:
			http.Redirect(w, r, AdminPath, http.StatusTemporaryRedirect)
		default:
			next.ServeHTTP(w, r)
		}
	})
}
