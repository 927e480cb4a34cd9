package storage

import (
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// PreparedStatements holds the prepared SQL statements used for database queries.
// This struct is exported to allow reuse in test utilities.
type PreparedStatements struct {
	SelectPageExistsStmt *sqlx.Stmt
}

// InitializeStatements prepares all the SQL statements needed for database operations.
// This function is exported to allow reuse in test utilities.
func InitializeStatements(conn *sqlx.DB) (*PreparedStatements, error) {
	stmts := &PreparedStatements{}
	var err error

	stmts.SelectPageExistsStmt, err = conn.Preparex(
		`SELECT EXISTS(SELECT 1 FROM Page WHERE namespace = ? AND title = ?)`)
	if err != nil {
		return nil, err
	}

	return stmts, nil
}

// sqliteDb is the page store. Methods are defined in separate files:
//   - page_repo.go: Page operations
type sqliteDb struct {
	*PreparedStatements
	conn *sqlx.DB
}

// Open opens the SQLite database at path. In-memory databases are limited to
// a single connection so every query sees the same data.
func Open(path string) (*sqlx.DB, error) {
	dsn := path
	memory := path == ":memory:" || strings.Contains(path, "mode=memory")
	if !memory {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if memory {
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// Init initializes the storage layer with an existing database connection.
// The database connection should already have migrations applied via RunMigrations.
func Init(db *sqlx.DB) (*sqliteDb, error) {
	var err error

	store := &sqliteDb{conn: db}
	store.PreparedStatements, err = InitializeStatements(db)
	if err != nil {
		return nil, err
	}

	return store, nil
}
