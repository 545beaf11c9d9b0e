package apicommon

import (
	"encoding/json"
	"net/http"

	"github.com/helpinghands/ngo-backend/errors"
	"go.vocdoni.io/dvote/log"
)

// Envelope is implemented by the results of the operations. Failure returns
// nil when the operation succeeded.
type Envelope interface {
	Failure() *errors.Error
}

// HTTPWriteJSON helper function allows to write a JSON response.
func HTTPWriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
}

// HTTPWriteRawJSON writes a payload that is already JSON encoded, such as a
// cached page.
func HTTPWriteRawJSON(w http.ResponseWriter, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
}

// HTTPWriteOK helper function allows to write an OK response.
func HTTPWriteOK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("\n")); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
}

// HTTPWriteResult writes the envelope of an operation. Failures are written
// with the status code of their error, successes with 200.
func HTTPWriteResult(w http.ResponseWriter, res Envelope) {
	if err := res.Failure(); err != nil {
		err.Write(w)
		return
	}
	HTTPWriteJSON(w, res)
}
