package connection

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// BindTx returns a gorm handle whose statements run on tx.
// The statement is cloned so the shared handle keeps its own pool.
func BindTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	gdb := db.Session(&gorm.Session{Context: context.Background(), NewDB: true})
	gdb.Statement.ConnPool = tx
	return gdb
}
