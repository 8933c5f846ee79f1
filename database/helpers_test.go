package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"
)

var memSeq atomic.Int64

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	uri := fmt.Sprintf("file:database_test_%d?mode=memory&cache=shared&_foreign_keys=1", memSeq.Add(1))
	db, err := Open(context.Background(), Options{Driver: "sqlite3", URI: uri, MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
