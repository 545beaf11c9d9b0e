package auth

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/helpinghands/ngo-backend/errors"
)

type sessionKey struct{}

// Verifier is a chi middleware that looks for the session token in the
// auth-token cookie and verifies it, storing the result in the request
// context for the Authenticator.
func (s *Service) Verifier(next http.Handler) http.Handler {
	return jwtauth.Verify(s.tokens, tokenFromCookie)(next)
}

// Authenticator rejects the requests without a valid session, otherwise it
// adds the session to the request context.
func (s *Service) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil {
			errors.ErrUnauthorized.Write(w)
			return
		}
		session, ok := sessionFromToken(token)
		if !ok {
			errors.ErrUnauthorized.Withf("invalid session token").Write(w)
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey{}, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Middleware chains Verifier and Authenticator.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return s.Verifier(s.Authenticator(next))
}

// SessionFromContext returns the session stored by the Authenticator.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*Session)
	return session, ok
}
