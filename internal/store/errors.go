package store

import "errors"

// Sentinel errors returned by the registry and replicas. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrDatabaseNotOpen is returned for any operation on a database name
	// that has not been opened.
	ErrDatabaseNotOpen = errors.New("database not open")

	// ErrInvalidDatabaseName is returned when a database name is empty or
	// cannot be used as a file name.
	ErrInvalidDatabaseName = errors.New("invalid database name")

	// ErrEmptyKey is returned when a key-value operation gets an empty key.
	ErrEmptyKey = errors.New("empty key")

	// ErrInvalidValue is returned by Put when the value is not valid JSON.
	ErrInvalidValue = errors.New("value is not valid json")

	// ErrStoreClosed is returned by a replica after Close.
	ErrStoreClosed = errors.New("store closed")
)

// Low-level database operation errors, wrapped by the SQLite replica.
var (
	// ErrBuildingSQLQuery is returned when squirrel fails to render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT, REPLACE or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when reading a result set fails midway.
	ErrScanningRows = errors.New("failed to scan kv rows")
)
