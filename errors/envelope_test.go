package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/helpinghands/ngo-backend/db"
)

func TestEnvelope(t *testing.T) {
	c := qt.New(t)
	rec := httptest.NewRecorder()
	ErrNotFound.Write(rec)
	c.Assert(rec.Code, qt.Equals, http.StatusNotFound)
	c.Assert(rec.Header().Get("Content-Type"), qt.Equals, "application/json")
	var body map[string]any
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &body), qt.IsNil)
	c.Assert(body["success"], qt.Equals, false)
	c.Assert(body["message"], qt.Equals, "not found")
	c.Assert(body["code"], qt.Equals, float64(40401))
}

func TestWithKeepsKind(t *testing.T) {
	c := qt.New(t)
	err := ErrValidation.With("name is required")
	c.Assert(err.Error(), qt.Equals, "validation failed: name is required")
	c.Assert(err.HTTPstatus, qt.Equals, http.StatusBadRequest)
	c.Assert(stderrors.Is(err, ErrValidation), qt.IsTrue)
	c.Assert(stderrors.Is(err, ErrConflict), qt.IsFalse)
	c.Assert(ErrConflict.WithErr(nil), qt.Equals, ErrConflict)
}

func TestFromDB(t *testing.T) {
	c := qt.New(t)
	cases := []struct {
		err    error
		status int
	}{
		{db.ErrNotFound, http.StatusNotFound},
		{db.ErrAlreadyExists, http.StatusConflict},
		{db.ErrInvalidData, http.StatusBadRequest},
		{fmt.Errorf("%w: mongo URL is not defined", db.ErrConfiguration), http.StatusInternalServerError},
		{fmt.Errorf("%w: dial tcp", db.ErrConnection), http.StatusServiceUnavailable},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		c.Assert(FromDB(tc.err).HTTPstatus, qt.Equals, tc.status, qt.Commentf("%v", tc.err))
	}
	// internal details are not part of the message
	c.Assert(FromDB(fmt.Errorf("%w: secret host", db.ErrConnection)).Error(), qt.Not(qt.Contains), "secret host")
}
