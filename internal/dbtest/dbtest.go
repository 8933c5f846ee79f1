// Package dbtest cung cấp cơ sở dữ liệu SQLite in-memory cho test.
package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/biosecret/go-todo/database"
)

var memSeq atomic.Int64

// Open mở một SQLite in-memory riêng cho mỗi test và đóng nó khi test kết thúc
func Open(t testing.TB) *sql.DB {
	t.Helper()
	uri := fmt.Sprintf("file:todo_test_%d?mode=memory&cache=shared&_foreign_keys=1", memSeq.Add(1))
	db, err := database.Open(context.Background(), database.Options{Driver: "sqlite3", URI: uri, MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
