// Package auth implements the admin authentication: credentials check,
// session token issuance in the auth-token cookie and session verification.
package auth

import (
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/helpinghands/ngo-backend/db"
	"github.com/helpinghands/ngo-backend/errors"
	"github.com/helpinghands/ngo-backend/internal"
	"github.com/helpinghands/ngo-backend/validator"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"go.vocdoni.io/dvote/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "auth-token"
	// SessionDuration is the lifetime of a session token and its cookie.
	SessionDuration = 7 * 24 * time.Hour

	claimUserID = "userId"
	claimEmail  = "email"
	claimName   = "name"
)

// Config holds the settings of the authentication service. Production turns
// on the Secure attribute of the session cookie.
type Config struct {
	Secret     string
	Production bool
}

// UserStore is the storage of the admin accounts used to check credentials.
type UserStore interface {
	UserByEmail(email string) (*db.User, error)
}

// Service issues and verifies the admin sessions.
type Service struct {
	conf      Config
	users     UserStore
	tokens    *jwtauth.JWTAuth
	validator *validator.Validator
	// dummyHash is compared when the user does not exist, so a login takes
	// the same effort whether the email is registered or not.
	dummyHash []byte
}

// User holds the public fields of an admin account.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the identity decoded from a valid session token.
type Session struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// LoginResult is the envelope returned by Login.
type LoginResult struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	User    *User         `json:"user,omitempty"`
	Err     *errors.Error `json:"-"`
}

// LogoutResult is the envelope returned by Logout.
type LogoutResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// SessionResult is the envelope describing the current session.
type SessionResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Session *Session `json:"session,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,mail"`
	Password string `json:"password" validate:"required"`
}

// New creates the authentication service. A missing signing secret is a
// configuration error.
func New(conf *Config, users UserStore) (*Service, error) {
	if conf == nil || conf.Secret == "" {
		log.Errorw(stderrors.New("missing session signing secret"), "cannot create the authentication service")
		return nil, errors.ErrConfiguration
	}
	if users == nil {
		return nil, errors.ErrConfiguration
	}
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.ErrGenericInternalServerError.WithErr(err)
	}
	return &Service{
		conf:      *conf,
		users:     users,
		tokens:    jwtauth.New("HS256", []byte(conf.Secret), nil),
		validator: validator.New(),
		dummyHash: dummyHash,
	}, nil
}

// HashPassword returns the bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.ErrValidation.With("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login checks the credentials and, when they match an admin account,
// returns the session cookie to set. Failed logins never return a cookie.
func (s *Service) Login(email, password string) (LoginResult, *http.Cookie) {
	req := loginRequest{
		Email:    internal.NormalizeEmail(email),
		Password: password,
	}
	if err := s.validator.Validate(&req); err != nil {
		return loginFailure(errors.ErrValidation.WithErr(err)), nil
	}
	user, err := s.users.UserByEmail(req.Email)
	if err != nil {
		if !stderrors.Is(err, db.ErrNotFound) {
			log.Warnw("cannot load user on login", "error", err)
			return loginFailure(errors.FromDB(err)), nil
		}
		// keep the effort constant for unknown emails
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
		return loginFailure(errors.ErrInvalidCredentials), nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return loginFailure(errors.ErrInvalidCredentials), nil
	}
	expiry := time.Now().Add(SessionDuration)
	token, err := s.makeToken(user, expiry)
	if err != nil {
		log.Errorw(err, "cannot sign session token")
		return loginFailure(errors.ErrGenericInternalServerError), nil
	}
	log.Infow("admin logged in", "user", user.ID.Hex())
	return LoginResult{
		Success: true,
		Message: "logged in",
		User: &User{
			ID:    user.ID.Hex(),
			Name:  user.Name,
			Email: user.Email,
		},
	}, s.cookie(token, expiry)
}

// Logout returns an expired session cookie. It always succeeds.
func (s *Service) Logout() (LogoutResult, *http.Cookie) {
	cookie := s.cookie("", time.Unix(0, 0))
	cookie.MaxAge = -1
	return LogoutResult{Success: true, Message: "logged out"}, cookie
}

// CurrentSession reads and verifies the session cookie of the request. Any
// failure, a missing cookie, a bad signature, an expired token or missing
// claims, reports no session.
func (s *Service) CurrentSession(r *http.Request) (*Session, bool) {
	token := tokenFromCookie(r)
	if token == "" {
		return nil, false
	}
	return s.verify(token)
}

// makeToken creates a JWT token for the given user. The token is signed with
// the service secret, following the JWT specification.
func (s *Service) makeToken(user *db.User, expiry time.Time) (string, error) {
	claims := map[string]any{
		claimUserID: user.ID.Hex(),
		claimEmail:  user.Email,
		claimName:   user.Name,
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiry(claims, expiry)
	_, token, err := s.tokens.Encode(claims)
	return token, err
}

// verify decodes the token checking its signature, its expiry and the
// identity claims.
func (s *Service) verify(tokenString string) (*Session, bool) {
	token, err := jwtauth.VerifyToken(s.tokens, tokenString)
	if err != nil {
		return nil, false
	}
	return sessionFromToken(token)
}

func sessionFromToken(token jwt.Token) (*Session, bool) {
	if token == nil || jwt.Validate(token,
		jwt.WithRequiredClaim(claimUserID),
		jwt.WithRequiredClaim(claimEmail),
	) != nil {
		return nil, false
	}
	claims := token.PrivateClaims()
	userID, _ := claims[claimUserID].(string)
	email, _ := claims[claimEmail].(string)
	name, _ := claims[claimName].(string)
	if userID == "" || email == "" {
		return nil, false
	}
	return &Session{
		UserID:    userID,
		Email:     email,
		Name:      name,
		ExpiresAt: token.Expiration(),
	}, true
}

func (s *Service) cookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   s.conf.Production,
		SameSite: http.SameSiteLaxMode,
	}
}

func tokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

func loginFailure(err errors.Error) LoginResult {
	return LoginResult{Success: false, Message: err.Error(), Err: &err}
}
