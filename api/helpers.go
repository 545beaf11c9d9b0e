package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helpinghands/ngo-backend/errors"
)

// decodeBody decodes the JSON body of the request into v. On failure it
// writes the error response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		errors.ErrMalformedBody.WithErr(err).Write(w)
		return false
	}
	return true
}

// idFromRequest returns the item id of the URL. The content operations
// validate it, an id that is not a valid object id is reported as not
// found.
func idFromRequest(r *http.Request) string {
	return chi.URLParam(r, idParam)
}
