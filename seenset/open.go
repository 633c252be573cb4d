package seenset

import "fmt"

// Open returns the store for a storage type and DSN. Type "file" (the
// default when empty) persists a JSON array at the DSN path; "sqlite" opens
// a SQLite database there.
func Open(storageType, dsn string) (Store, error) {
	switch storageType {
	case "", "file":
		return NewFileStore(dsn), nil
	case "sqlite":
		return NewSQLiteStore(dsn)
	default:
		return nil, fmt.Errorf("unknown seen-set storage type: %s", storageType)
	}
}
