package database

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles scan history persistence.
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveScan persists a scan record and its per-file rows in one transaction.
func (r *Repository) SaveScan(record *ScanRecord, files []ScanFileRecord) error {
	verdicts, err := json.Marshal(record.VerdictCounts)
	if err != nil {
		return fmt.Errorf("failed to encode verdict counts: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO scan_records (
			id, source, branch, files_scanned, files_failed, avg_probability,
			median_probability, high_risk_count, verdict_counts, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.Source, record.Branch, record.FilesScanned, record.FilesFailed,
		record.AvgProbability, record.MedianProbability, record.HighRiskCount,
		string(verdicts), record.DurationMs, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert scan record: %w", err)
	}

	for _, f := range files {
		if f.ID == "" {
			f.ID = uuid.New().String()
		}
		_, err = tx.Exec(`
			INSERT INTO scan_files (
				id, scan_id, path, language, ai_probability, confidence, verdict, lines, error
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, f.ID, record.ID, f.Path, f.Language, f.AIProbability, f.Confidence, f.Verdict, f.Lines, f.Error)
		if err != nil {
			return fmt.Errorf("failed to insert scan file %s: %w", f.Path, err)
		}
	}

	return tx.Commit()
}

// GetScan returns one scan record by ID.
func (r *Repository) GetScan(id string) (*ScanRecord, error) {
	stmt, err := r.db.GetPreparedStatement("get_scan")
	if err != nil {
		return nil, err
	}

	var record ScanRecord
	var verdicts string
	err = stmt.QueryRow(id).Scan(
		&record.ID, &record.Source, &record.Branch, &record.FilesScanned,
		&record.FilesFailed, &record.AvgProbability, &record.MedianProbability,
		&record.HighRiskCount, &verdicts, &record.DurationMs, &record.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(verdicts), &record.VerdictCounts); err != nil {
		return nil, fmt.Errorf("failed to decode verdict counts: %w", err)
	}

	return &record, nil
}

// ListScans returns the most recent scan records, newest first.
func (r *Repository) ListScans(limit int) ([]ScanRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	stmt, err := r.db.GetPreparedStatement("list_scans")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	records := make([]ScanRecord, 0, limit)
	for rows.Next() {
		var record ScanRecord
		var verdicts string
		err = rows.Scan(
			&record.ID, &record.Source, &record.Branch, &record.FilesScanned,
			&record.FilesFailed, &record.AvgProbability, &record.MedianProbability,
			&record.HighRiskCount, &verdicts, &record.DurationMs, &record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(verdicts), &record.VerdictCounts); err != nil {
			return nil, fmt.Errorf("failed to decode verdict counts: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// GetScanFiles returns the per-file rows of a scan, highest probability first.
func (r *Repository) GetScanFiles(scanID string) ([]ScanFileRecord, error) {
	stmt, err := r.db.GetPreparedStatement("get_scan_files")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(scanID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan files: %w", err)
	}
	defer rows.Close()

	var files []ScanFileRecord
	for rows.Next() {
		var f ScanFileRecord
		err = rows.Scan(&f.ID, &f.ScanID, &f.Path, &f.Language,
			&f.AIProbability, &f.Confidence, &f.Verdict, &f.Lines, &f.Error)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file row: %w", err)
		}
		files = append(files, f)
	}

	return files, rows.Err()
}
