package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB represents the database connection with pooling
type DB struct {
	*sql.DB
	pool     *ConnectionPool
	prepared map[string]*sql.Stmt
	mutex    sync.RWMutex
}

// ConnectionPool manages database connection pooling
type ConnectionPool struct {
	db           *sql.DB
	maxOpenConns int
	maxIdleConns int
	maxLifetime  time.Duration
}

// NewConnectionPool creates a new database connection pool
func NewConnectionPool(db *sql.DB, maxOpen, maxIdle int, maxLifetime time.Duration) *ConnectionPool {
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)

	return &ConnectionPool{
		db:           db,
		maxOpenConns: maxOpen,
		maxIdleConns: maxIdle,
		maxLifetime:  maxLifetime,
	}
}

// GetStats returns connection pool statistics
func (cp *ConnectionPool) GetStats() map[string]interface{} {
	stats := cp.db.Stats()

	return map[string]interface{}{
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"max_open_connections": cp.maxOpenConns,
		"max_idle_connections": cp.maxIdleConns,
		"max_lifetime_seconds": cp.maxLifetime.Seconds(),
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
}

// NewDB opens the scan history database under dataDir, creating it and its
// schema on first use.
func NewDB(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "aidetect.db")

	connStr := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pool := NewConnectionPool(db, 25, 5, 5*time.Minute)

	database := &DB{
		DB:       db,
		pool:     pool,
		prepared: make(map[string]*sql.Stmt),
	}

	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := database.initPreparedStatements(); err != nil {
		return nil, fmt.Errorf("failed to initialize prepared statements: %w", err)
	}

	slog.Info("Database initialized",
		"path", dbPath,
		"max_open_conns", pool.maxOpenConns,
		"max_idle_conns", pool.maxIdleConns)

	return database, nil
}

// migrate creates the necessary tables
func (db *DB) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS scan_records (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			branch TEXT,
			files_scanned INTEGER NOT NULL,
			files_failed INTEGER NOT NULL,
			avg_probability REAL NOT NULL,
			median_probability REAL NOT NULL,
			high_risk_count INTEGER NOT NULL,
			verdict_counts TEXT NOT NULL, -- JSON verdict tally
			duration_ms INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS scan_files (
			id TEXT PRIMARY KEY,
			scan_id TEXT NOT NULL,
			path TEXT NOT NULL,
			language TEXT NOT NULL,
			ai_probability REAL NOT NULL,
			confidence TEXT NOT NULL,
			verdict TEXT NOT NULL,
			lines INTEGER NOT NULL,
			error TEXT,
			FOREIGN KEY (scan_id) REFERENCES scan_records(id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_scan_records_created ON scan_records(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_records_source ON scan_records(source)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_files_scan_id ON scan_files(scan_id)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_files_probability ON scan_files(ai_probability DESC)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	return nil
}

// initPreparedStatements initializes frequently used prepared statements
func (db *DB) initPreparedStatements() error {
	statements := map[string]string{
		"insert_scan": `INSERT INTO scan_records (
			id, source, branch, files_scanned, files_failed, avg_probability,
			median_probability, high_risk_count, verdict_counts, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,

		"insert_scan_file": `INSERT INTO scan_files (
			id, scan_id, path, language, ai_probability, confidence, verdict, lines, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,

		"get_scan": `SELECT id, source, branch, files_scanned, files_failed,
			avg_probability, median_probability, high_risk_count, verdict_counts,
			duration_ms, created_at
			FROM scan_records WHERE id = ?`,

		"list_scans": `SELECT id, source, branch, files_scanned, files_failed,
			avg_probability, median_probability, high_risk_count, verdict_counts,
			duration_ms, created_at
			FROM scan_records ORDER BY created_at DESC LIMIT ?`,

		"get_scan_files": `SELECT id, scan_id, path, language, ai_probability,
			confidence, verdict, lines, error
			FROM scan_files WHERE scan_id = ? ORDER BY ai_probability DESC`,
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	for name, query := range statements {
		stmt, err := db.Prepare(query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement %s: %w", name, err)
		}
		db.prepared[name] = stmt
	}

	return nil
}

// GetPreparedStatement retrieves a prepared statement
func (db *DB) GetPreparedStatement(name string) (*sql.Stmt, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	stmt, exists := db.prepared[name]
	if !exists {
		return nil, fmt.Errorf("prepared statement %s not found", name)
	}

	return stmt, nil
}

// GetPoolStats returns database connection pool statistics
func (db *DB) GetPoolStats() map[string]interface{} {
	return db.pool.GetStats()
}

// Close closes the database connection and prepared statements
func (db *DB) Close() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	for name, stmt := range db.prepared {
		if err := stmt.Close(); err != nil {
			slog.Warn("Failed to close prepared statement", "name", name, "error", err)
		}
	}

	db.prepared = make(map[string]*sql.Stmt)

	return db.DB.Close()
}
