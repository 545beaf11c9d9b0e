package errors

import (
	stderrors "errors"

	"github.com/helpinghands/ngo-backend/db"
)

// FromDB translates a storage error into the Error returned to the clients.
// The original error is kept out of the message of server side failures so
// no internal detail is leaked.
func FromDB(err error) Error {
	switch {
	case err == nil:
		return ErrGenericInternalServerError
	case stderrors.Is(err, db.ErrNotFound):
		return ErrNotFound
	case stderrors.Is(err, db.ErrAlreadyExists):
		return ErrConflict
	case stderrors.Is(err, db.ErrInvalidData):
		return ErrInvalidData
	case stderrors.Is(err, db.ErrConfiguration):
		return ErrConfiguration
	case stderrors.Is(err, db.ErrConnection):
		return ErrConnection
	default:
		return ErrInternalStorageError
	}
}
