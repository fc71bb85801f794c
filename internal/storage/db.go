package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"gridstats/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  season INTEGER NOT NULL,
  window TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  failuresJson TEXT NOT NULL,
  timingsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId INTEGER NOT NULL,
  eventDate TEXT NOT NULL,
  week INTEGER NOT NULL,
  team TEXT NOT NULL,
  opponent TEXT NOT NULL,
  recordJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(runId) REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_records_runId ON records(runId);
CREATE INDEX IF NOT EXISTS idx_records_team ON records(team);
`

	_, err := d.conn.Exec(schema)
	return err
}

// InsertRun persists one batch run and its records, returning the run id.
func (d *DB) InsertRun(report *internal.RunReport) (int64, error) {
	counts := map[string]int{
		"selected":  report.Selected,
		"succeeded": report.Succeeded(),
		"failed":    len(report.Failures),
		"records":   len(report.Records),
	}
	countsJSON, _ := json.Marshal(counts)
	failuresJSON, _ := json.Marshal(report.Failures)
	timingsJSON, _ := json.Marshal(map[string]float64{"totalMs": float64(report.Elapsed.Milliseconds())})

	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
INSERT INTO runs (traceId, season, window, countsJson, failuresJson, timingsJson)
VALUES (?, ?, ?, ?, ?, ?)`,
		report.TraceID, report.Season, report.Window, string(countsJSON), string(failuresJSON), string(timingsJSON))
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`
INSERT INTO records (runId, eventDate, week, team, opponent, recordJson)
VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, rec := range report.Records {
		blob, err := json.Marshal(rec)
		if err != nil {
			return 0, err
		}
		if _, err := stmt.Exec(runID, rec.EventDate, rec.Week, rec.Team, rec.Opponent, string(blob)); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// ListRecords returns a run's perspective records in insertion order.
func (d *DB) ListRecords(runID int64) ([]internal.PerspectiveRecord, error) {
	rows, err := d.conn.Query(`SELECT recordJson FROM records WHERE runId = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.PerspectiveRecord
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		var rec internal.PerspectiveRecord
		if err := json.Unmarshal([]byte(blob), &rec); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
