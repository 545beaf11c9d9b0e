package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.vocdoni.io/dvote/log"
)

// Error is returned by the services and written by the handlers. Code
// identifies the failure to the clients and HTTPstatus is the status the
// response carries.
type Error struct {
	Err        error
	Code       int
	HTTPstatus int
	// LogLevel is used for the 4xx responses, "debug" when empty. Server
	// errors are always logged as errors.
	LogLevel string
	// Data is an optional payload added to the envelope, such as the fields
	// that failed validation.
	Data any
}

// envelope is the JSON body of a failed response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Data    any    `json:"data,omitempty"`
}

// MarshalJSON encodes the failure envelope, for example
// {"success":false,"message":"not found","code":40401}.
func (e Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(envelope{Message: e.Error(), Code: e.Code, Data: e.Data})
}

// Error returns the message of the wrapped error, or the status text when
// there is none.
func (e Error) Error() string {
	if e.Err == nil {
		return http.StatusText(e.HTTPstatus)
	}
	return e.Err.Error()
}

func (e Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an Error with the same code, so
// errors.Is(err, ErrNotFound) matches any copy built with With or WithErr.
func (e Error) Is(target error) bool {
	switch t := target.(type) {
	case Error:
		return t.Code == e.Code
	case *Error:
		return t != nil && t.Code == e.Code
	}
	return false
}

// Write logs the error and sends the envelope with the HTTP status of e.
func (e Error) Write(w http.ResponseWriter) {
	body, err := json.Marshal(e)
	if err != nil {
		log.Warnw("failed to marshal error response", "error", err)
		http.Error(w, "marshal failed", http.StatusInternalServerError)
		return
	}
	e.log()
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(e.HTTPstatus)
	if _, err := w.Write(body); err != nil {
		log.Warnw("failed to write error response", "error", err)
	}
}

func (e Error) log() {
	if e.HTTPstatus >= http.StatusInternalServerError {
		log.Errorw(e.Err, fmt.Sprintf("api error response %d (code %d)", e.HTTPstatus, e.Code))
		return
	}
	kv := []any{"status", e.HTTPstatus, "code", e.Code, "message", e.Error()}
	switch e.LogLevel {
	case "info":
		log.Infow("api error response", kv...)
	case "warn":
		log.Warnw("api error response", kv...)
	default:
		log.Debugw("api error response", kv...)
	}
}

// wrap returns a copy of e with detail appended to its message.
func (e Error) wrap(detail string) Error {
	c := e
	c.Err = fmt.Errorf("%w: %s", e.Err, detail)
	return c
}

// With returns a copy of e with s appended to the message.
func (e Error) With(s string) Error {
	return e.wrap(s)
}

// Withf is With using a format string.
func (e Error) Withf(format string, args ...any) Error {
	return e.wrap(fmt.Sprintf(format, args...))
}

// WithErr returns a copy of e with the message of err appended. A nil err
// returns e unchanged.
func (e Error) WithErr(err error) Error {
	if err == nil {
		return e
	}
	return e.wrap(err.Error())
}

// WithData returns a copy of e carrying data in the response envelope.
func (e Error) WithData(data any) Error {
	c := e
	c.Data = data
	return c
}
