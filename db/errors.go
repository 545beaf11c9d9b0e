package db

import "fmt"

var (
	ErrNotFound      = fmt.Errorf("not found")
	ErrInvalidData   = fmt.Errorf("invalid data provided")
	ErrAlreadyExists = fmt.Errorf("already exists")
	// ErrConfiguration is returned when the storage settings are incomplete.
	ErrConfiguration = fmt.Errorf("database configuration error")
	// ErrConnection is returned when the database cannot be reached.
	ErrConnection = fmt.Errorf("database connection error")
)
