// Package storetest provides migrated in-memory databases for tests.
package storetest

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/KirkDiggler/poolbot/internal/repositories/store"
)

var counter atomic.Int64

// Open returns a fresh, migrated SQLite database private to the test.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:storetest%d?mode=memory&cache=shared", counter.Add(1))
	db, _, err := store.Open(context.Background(), dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(context.Background(), db, store.DialectSQLite); err != nil {
		t.Fatalf("migrate test store: %v", err)
	}
	return db
}
