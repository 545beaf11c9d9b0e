package auth

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/go-chi/jwtauth/v5"
	"github.com/helpinghands/ngo-backend/db"
	"github.com/helpinghands/ngo-backend/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	testEmail    = "admin@ngo.test"
	testPassword = "correct horse battery"
	testName     = "Admin"
	testSecret   = "test-secret"
)

type memoryUsers map[string]*db.User

func (m memoryUsers) UserByEmail(email string) (*db.User, error) {
	user, ok := m[email]
	if !ok {
		return nil, db.ErrNotFound
	}
	return user, nil
}

type brokenUsers struct{}

func (brokenUsers) UserByEmail(string) (*db.User, error) {
	return nil, db.ErrConnection
}

func newTestService(c *qt.C, production bool) *Service {
	hash, err := HashPassword(testPassword)
	c.Assert(err, qt.IsNil)
	users := memoryUsers{testEmail: {
		ID:       primitive.NewObjectID(),
		Name:     testName,
		Email:    testEmail,
		Password: hash,
	}}
	s, err := New(&Config{Secret: testSecret, Production: production}, users)
	c.Assert(err, qt.IsNil)
	return s
}

func TestNewRequiresSecret(t *testing.T) {
	c := qt.New(t)
	_, err := New(&Config{}, memoryUsers{})
	c.Assert(stderrors.Is(err, errors.ErrConfiguration), qt.IsTrue)
	// the message does not reveal which setting is missing
	c.Assert(err.Error(), qt.Equals, "server configuration error")
	_, err = New(nil, memoryUsers{})
	c.Assert(stderrors.Is(err, errors.ErrConfiguration), qt.IsTrue)
}

func TestLoginSuccess(t *testing.T) {
	c := qt.New(t)
	s := newTestService(c, true)
	res, cookie := s.Login("  Admin@NGO.test ", testPassword)
	c.Assert(res.Success, qt.IsTrue)
	c.Assert(res.Err, qt.IsNil)
	c.Assert(res.User.Email, qt.Equals, testEmail)
	c.Assert(res.User.Name, qt.Equals, testName)
	c.Assert(res.User.ID, qt.Not(qt.Equals), "")

	c.Assert(cookie, qt.Not(qt.IsNil))
	c.Assert(cookie.Name, qt.Equals, CookieName)
	c.Assert(cookie.HttpOnly, qt.IsTrue)
	c.Assert(cookie.Secure, qt.IsTrue)
	c.Assert(cookie.SameSite, qt.Equals, http.SameSiteLaxMode)
	c.Assert(cookie.Path, qt.Equals, "/")
	c.Assert(cookie.MaxAge, qt.Equals, 7*24*60*60)
	c.Assert(time.Until(cookie.Expires) > 7*24*time.Hour-time.Minute, qt.IsTrue)

	// the response never contains the password hash
	data, err := json.Marshal(res)
	c.Assert(err, qt.IsNil)
	c.Assert(strings.Contains(string(data), "$2a$"), qt.IsFalse)
	c.Assert(strings.Contains(string(data), "password"), qt.IsFalse)

	// the cookie carries a valid session
	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(cookie)
	session, ok := s.CurrentSession(req)
	c.Assert(ok, qt.IsTrue)
	c.Assert(session.UserID, qt.Equals, res.User.ID)
	c.Assert(session.Email, qt.Equals, testEmail)
	c.Assert(session.Name, qt.Equals, testName)
}

func TestLoginInsecureCookieOutsideProduction(t *testing.T) {
	c := qt.New(t)
	s := newTestService(c, false)
	res, cookie := s.Login(testEmail, testPassword)
	c.Assert(res.Success, qt.IsTrue)
	c.Assert(cookie.Secure, qt.IsFalse)
}

func TestLoginFailures(t *testing.T) {
	c := qt.New(t)
	s := newTestService(c, false)

	// wrong password
	res, cookie := s.Login(testEmail, "wrong password")
	c.Assert(res.Success, qt.IsFalse)
	c.Assert(cookie, qt.IsNil)
	c.Assert(stderrors.Is(*res.Err, errors.ErrInvalidCredentials), qt.IsTrue)
	c.Assert(res.Err.HTTPstatus, qt.Equals, http.StatusUnauthorized)

	// unknown user gets the same answer
	res, cookie = s.Login("nobody@ngo.test", testPassword)
	c.Assert(cookie, qt.IsNil)
	c.Assert(res.Message, qt.Equals, errors.ErrInvalidCredentials.Error())

	// malformed input
	for _, input := range [][2]string{
		{"not-an-email", testPassword},
		{testEmail, ""},
		{"", ""},
	} {
		res, cookie = s.Login(input[0], input[1])
		c.Assert(res.Success, qt.IsFalse)
		c.Assert(cookie, qt.IsNil)
		c.Assert(stderrors.Is(*res.Err, errors.ErrValidation), qt.IsTrue, qt.Commentf("%v", input))
	}

	// storage failures are reported without a cookie
	broken, err := New(&Config{Secret: testSecret}, brokenUsers{})
	c.Assert(err, qt.IsNil)
	res, cookie = broken.Login(testEmail, testPassword)
	c.Assert(cookie, qt.IsNil)
	c.Assert(res.Err.HTTPstatus, qt.Equals, http.StatusServiceUnavailable)
}

func TestLogout(t *testing.T) {
	c := qt.New(t)
	s := newTestService(c, true)
	res, cookie := s.Logout()
	c.Assert(res.Success, qt.IsTrue)
	c.Assert(cookie.Name, qt.Equals, CookieName)
	c.Assert(cookie.Value, qt.Equals, "")
	c.Assert(cookie.MaxAge < 0, qt.IsTrue)
	c.Assert(cookie.Path, qt.Equals, "/")
}

func TestCurrentSessionRejectsBadTokens(t *testing.T) {
	c := qt.New(t)
	s := newTestService(c, false)
	request := func(value string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if value != "" {
			req.AddCookie(&http.Cookie{Name: CookieName, Value: value})
		}
		return req
	}
	// no cookie
	_, ok := s.CurrentSession(request(""))
	c.Assert(ok, qt.IsFalse)
	// garbage
	_, ok = s.CurrentSession(request("not.a.token"))
	c.Assert(ok, qt.IsFalse)
	// signed with another secret
	other := jwtauth.New("HS256", []byte("other-secret"), nil)
	claims := map[string]any{"userId": "id", "email": testEmail}
	jwtauth.SetExpiry(claims, time.Now().Add(time.Hour))
	_, forged, err := other.Encode(claims)
	c.Assert(err, qt.IsNil)
	_, ok = s.CurrentSession(request(forged))
	c.Assert(ok, qt.IsFalse)
	// expired
	claims = map[string]any{"userId": "id", "email": testEmail}
	jwtauth.SetExpiry(claims, time.Now().Add(-time.Hour))
	_, expired, err := s.tokens.Encode(claims)
	c.Assert(err, qt.IsNil)
	_, ok = s.CurrentSession(request(expired))
	c.Assert(ok, qt.IsFalse)
	// missing identity claims
	claims = map[string]any{"name": testName}
	jwtauth.SetExpiry(claims, time.Now().Add(time.Hour))
	_, anonymous, err := s.tokens.Encode(claims)
	c.Assert(err, qt.IsNil)
	_, ok = s.CurrentSession(request(anonymous))
	c.Assert(ok, qt.IsFalse)
}

func TestMiddleware(t *testing.T) {
	c := qt.New(t)
	s := newTestService(c, false)
	handler := s.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(session.Email))
	}))

	// without session
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/members", nil))
	c.Assert(rec.Code, qt.Equals, http.StatusUnauthorized)
	var body map[string]any
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &body), qt.IsNil)
	c.Assert(body["success"], qt.Equals, false)

	// with session
	_, cookie := s.Login(testEmail, testPassword)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/members", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(rec.Body.String(), qt.Equals, testEmail)
}
