package api

import (
	"net/http"

	"github.com/helpinghands/ngo-backend/api/apicommon"
	"github.com/helpinghands/ngo-backend/auth"
)

// authLoginHandler godoc
//
//	@Summary		Login
//	@Description	Check the admin credentials and set the session cookie
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apicommon.LoginRequest	true	"Login credentials"
//	@Success		200		{object}	auth.LoginResult
//	@Failure		400		{object}	errors.Error	"Invalid email or missing password"
//	@Failure		401		{object}	errors.Error	"Invalid credentials"
//	@Router			/api/auth/login [post]
func (a *API) authLoginHandler(w http.ResponseWriter, r *http.Request) {
	req := &apicommon.LoginRequest{}
	if !decodeBody(w, r, req) {
		return
	}
	res, cookie := a.auth.Login(req.Email, req.Password)
	if res.Err != nil {
		res.Err.Write(w)
		return
	}
	http.SetCookie(w, cookie)
	apicommon.HTTPWriteJSON(w, res)
}

// authLogoutHandler godoc
//
//	@Summary		Logout
//	@Description	Expire the session cookie. It always succeeds.
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	auth.LogoutResult
//	@Router			/api/auth/logout [post]
func (a *API) authLogoutHandler(w http.ResponseWriter, _ *http.Request) {
	res, cookie := a.auth.Logout()
	http.SetCookie(w, cookie)
	apicommon.HTTPWriteJSON(w, res)
}

// authSessionHandler godoc
//
//	@Summary		Current session
//	@Description	Return the session of the cookie, success is false without a valid session
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	auth.SessionResult
//	@Router			/api/auth/session [get]
func (a *API) authSessionHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := a.auth.CurrentSession(r)
	if !ok {
		apicommon.HTTPWriteJSON(w, auth.SessionResult{Success: false, Message: "no active session"})
		return
	}
	apicommon.HTTPWriteJSON(w, auth.SessionResult{Success: true, Session: session})
}
