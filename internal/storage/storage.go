// Package storage persists analysis reports in SQLite.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"gapscan/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS reports (
    id          TEXT PRIMARY KEY,
    own_url     TEXT NOT NULL,
    created_at  TIMESTAMP NOT NULL,
    gaps_found  INTEGER NOT NULL,
    payload     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at DESC);
`

// ReportMeta is the listing row for a stored report.
type ReportMeta struct {
	ID        string    `json:"id"`
	OwnURL    string    `json:"own_url"`
	CreatedAt time.Time `json:"created_at"`
	GapsFound int       `json:"gaps_found"`
}

// Database stores full analysis results as JSON payloads keyed by UUID.
type Database struct {
	db *sql.DB
}

func NewDatabase(path string) (*Database, error) {
	dsn := fmt.Sprintf("%s?_journal=WAL&_synchronous=NORMAL&_busy_timeout=5000", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	return &Database{db: db}, nil
}

// Initialize creates the schema.
func (d *Database) Initialize() error {
	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

// SaveResult stores a result and returns its generated report ID.
func (d *Database) SaveResult(result *models.AnalysisResult) (string, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	id := uuid.NewString()
	_, err = d.db.Exec(
		`INSERT INTO reports (id, own_url, created_at, gaps_found, payload) VALUES (?, ?, ?, ?, ?)`,
		id, result.OwnWebsiteURL, result.AnalysisDate.UTC(), result.TotalGapsFound, string(payload),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert report: %w", err)
	}
	return id, nil
}

// GetResult loads a stored report by ID. Returns sql.ErrNoRows when absent.
func (d *Database) GetResult(id string) (*models.AnalysisResult, error) {
	var payload string
	err := d.db.QueryRow(`SELECT payload FROM reports WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		return nil, err
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report %s: %w", id, err)
	}
	return &result, nil
}

// ListReports returns stored report metadata, newest first.
func (d *Database) ListReports(limit int) ([]ReportMeta, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.db.Query(
		`SELECT id, own_url, created_at, gaps_found FROM reports ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var metas []ReportMeta
	for rows.Next() {
		var m ReportMeta
		if err := rows.Scan(&m.ID, &m.OwnURL, &m.CreatedAt, &m.GapsFound); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		metas = append(metas, m)
	}
	return metas, rows.Err()
}
