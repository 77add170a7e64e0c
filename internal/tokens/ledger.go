package tokens

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Usage is a snapshot of the ledger's counters.
type Usage struct {
	SessionTokens int64 `json:"session_tokens"`
	TotalTokens   int64 `json:"total_tokens"`
}

// Ledger accumulates token usage. SessionTokens resets between sessions,
// TotalTokens only grows.
type Ledger interface {
	Read() (Usage, error)
	Increment(tokens int64) error
	ResetSession() error
	Close() error
}

// SQLiteLedger persists usage in a single-row sqlite table so counts
// survive process restarts.
type SQLiteLedger struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// NewSQLiteLedger creates or opens the ledger database at path.
func NewSQLiteLedger(path string) (*SQLiteLedger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	l := &SQLiteLedger{db: db, dbPath: path}
	if err := l.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return l, nil
}

// Close closes the database connection.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}

// Path returns the database file path.
func (l *SQLiteLedger) Path() string {
	return l.dbPath
}

func (l *SQLiteLedger) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS token_usage (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		session_tokens INTEGER NOT NULL DEFAULT 0,
		total_tokens INTEGER NOT NULL DEFAULT 0
	);
	INSERT OR IGNORE INTO token_usage (id, session_tokens, total_tokens) VALUES (1, 0, 0);
	`
	_, err := l.db.Exec(schema)
	return err
}

// Read returns the current counters.
func (l *SQLiteLedger) Read() (Usage, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var u Usage
	err := l.db.QueryRow(
		"SELECT session_tokens, total_tokens FROM token_usage WHERE id = 1",
	).Scan(&u.SessionTokens, &u.TotalTokens)
	if err != nil {
		return Usage{}, fmt.Errorf("failed to read token usage: %w", err)
	}
	return u, nil
}

// Increment adds tokens to both counters.
func (l *SQLiteLedger) Increment(tokens int64) error {
	if tokens <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.db.Exec(
		"UPDATE token_usage SET session_tokens = session_tokens + ?, total_tokens = total_tokens + ? WHERE id = 1",
		tokens, tokens,
	)
	if err != nil {
		return fmt.Errorf("failed to increment token usage: %w", err)
	}
	return nil
}

// ResetSession zeroes the session counter. The lifetime total is untouched.
func (l *SQLiteLedger) ResetSession() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.db.Exec("UPDATE token_usage SET session_tokens = 0 WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to reset session tokens: %w", err)
	}
	return nil
}

// MemoryLedger is an in-process Ledger for tests and for runs with
// persistence disabled.
type MemoryLedger struct {
	mu    sync.Mutex
	usage Usage
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

func (l *MemoryLedger) Read() (Usage, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.usage, nil
}

func (l *MemoryLedger) Increment(tokens int64) error {
	if tokens <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.usage.SessionTokens += tokens
	l.usage.TotalTokens += tokens
	return nil
}

func (l *MemoryLedger) ResetSession() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.usage.SessionTokens = 0
	return nil
}

func (l *MemoryLedger) Close() error { return nil }
