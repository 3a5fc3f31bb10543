package zombiezen

import (
	"context"
	"embed"
	"fmt"
	"path"
	"runtime"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

// DocsSchema creates the docs, sentences and sentence_lemmas tables.
const DocsSchema = "docs.sql"

// NewPool creates a connection pool on dbPath with one connection per CPU.
// Every connection enforces foreign keys.
func NewPool(dbPath string) (*sqlitex.Pool, error) {
	initString := fmt.Sprintf("file:%s", dbPath)

	// Default flags: sqlite.OpenReadWrite | sqlite.OpenCreate | sqlite.OpenWAL | sqlite.OpenURI
	pool, err := sqlitex.NewPool(initString, sqlitex.PoolOptions{
		PoolSize: runtime.NumCPU(),
		PrepareConn: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteTransient(conn, "PRAGMA foreign_keys = ON;", nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pool at %s: %w", dbPath, err)
	}
	return pool, nil
}

// CreateSchema runs an embedded SQL script, e.g. DocsSchema. The scripts
// are idempotent.
func CreateSchema(pool *sqlitex.Pool, name string) error {
	scriptPath := path.Join("sql", name)
	script, err := sqlFiles.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read embedded sql file %s: %w", scriptPath, err)
	}

	conn, err := pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, string(script), nil); err != nil {
		return fmt.Errorf("failed to execute script %s: %w", name, err)
	}
	return nil
}

// Open creates the pool and the docs schema.
func Open(dbPath string) (*sqlitex.Pool, error) {
	pool, err := NewPool(dbPath)
	if err != nil {
		return nil, err
	}
	if err := CreateSchema(pool, DocsSchema); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
