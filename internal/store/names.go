package store

import (
	"fmt"
	"strings"
)

// validateDatabaseName rejects names that are empty or would escape the
// storage directory when used as a file name.
func validateDatabaseName(dbName string) error {
	if strings.TrimSpace(dbName) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidDatabaseName)
	}
	if dbName == "." || dbName == ".." || strings.ContainsAny(dbName, `/\`+"\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidDatabaseName, dbName)
	}

	return nil
}
