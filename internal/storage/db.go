package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/example/airlink-admin/internal/observability"
)

// ErrNotFound is returned by GetByID-style lookups when no row matches.
// Callers that only care about the original boolean contract can treat any
// non-nil error as "absent"/failure.
var ErrNotFound = errors.New("not found")

// Open connects to the backing store and verifies the connection with a
// ping. There is no pooling tuning and no retry; a dead store is reported
// immediately.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}
	return db, nil
}

// IsConstraintViolation reports whether err was caused by the store
// rejecting a statement over referential integrity, e.g. deleting a ruta or
// destino that still has viajes. Class 23 covers integrity violations.
func IsConstraintViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "23"
	}
	return false
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// record keeps the per-operation store metrics in one place so repositories
// can tally every call the same way.
func record(entity, op string, err error) {
	observability.StoreOpsTotal.WithLabelValues(entity, op, outcome(err)).Inc()
}
