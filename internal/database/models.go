package database

import (
	"time"

	"github.com/google/uuid"
)

// ScanRecord summarizes one repository scan.
type ScanRecord struct {
	ID                string         `json:"id" db:"id"`
	Source            string         `json:"source" db:"source"`
	Branch            string         `json:"branch,omitempty" db:"branch"`
	FilesScanned      int            `json:"files_scanned" db:"files_scanned"`
	FilesFailed       int            `json:"files_failed" db:"files_failed"`
	AvgProbability    float64        `json:"avg_probability" db:"avg_probability"`
	MedianProbability float64        `json:"median_probability" db:"median_probability"`
	HighRiskCount     int            `json:"high_risk_count" db:"high_risk_count"`
	VerdictCounts     map[string]int `json:"verdict_counts"`
	DurationMs        int64          `json:"duration_ms" db:"duration_ms"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`
}

// ScanFileRecord is one file row of a persisted scan.
type ScanFileRecord struct {
	ID            string  `json:"id" db:"id"`
	ScanID        string  `json:"scan_id" db:"scan_id"`
	Path          string  `json:"path" db:"path"`
	Language      string  `json:"language" db:"language"`
	AIProbability float64 `json:"ai_probability" db:"ai_probability"`
	Confidence    string  `json:"confidence" db:"confidence"`
	Verdict       string  `json:"verdict" db:"verdict"`
	Lines         int     `json:"lines" db:"lines"`
	Error         string  `json:"error,omitempty" db:"error"`
}

// NewScanRecord creates a scan record with a generated ID and timestamp.
func NewScanRecord(source, branch string) *ScanRecord {
	return &ScanRecord{
		ID:            uuid.New().String(),
		Source:        source,
		Branch:        branch,
		VerdictCounts: make(map[string]int),
		CreatedAt:     time.Now(),
	}
}
