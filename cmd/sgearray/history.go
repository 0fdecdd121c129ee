package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// timeLayout is how submittime is stored. The sqlite3 driver parses it back
// into a time.Time because the column is declared datetime.
const timeLayout = "2006-01-02 15:04:05"

// InitHistoryDB opens (creating if needed) the submission history database
func InitHistoryDB(dbPath string) (*HistoryDB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %v", err)
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %v", err)
	}

	sql_table := `
	CREATE TABLE IF NOT EXISTS submissions(
		Id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
		usrID TEXT NOT NULL,
		name TEXT NOT NULL,
		workdir TEXT NOT NULL,
		params TEXT NOT NULL,
		tasks integer DEFAULT 0,
		procs integer DEFAULT 1,
		backend TEXT NOT NULL,
		jobid TEXT,
		command TEXT NOT NULL,
		submittime datetime NOT NULL
	);
	`
	if _, err = conn.Exec(sql_table); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create table: %v", err)
	}

	return &HistoryDB{Db: conn}, nil
}

func (h *HistoryDB) Close() error {
	return h.Db.Close()
}

// Record implements Recorder
func (h *HistoryDB) Record(job *JobSpec, sub *Submission) error {
	var jobID sql.NullString
	if sub.JobID != "" {
		jobID = sql.NullString{String: sub.JobID, Valid: true}
	}
	_, err := h.Db.Exec(`
		INSERT INTO submissions(usrID, name, workdir, params, tasks, procs, backend, jobid, command, submittime)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, GetCurrentUserID(), job.Name, job.WorkDir, job.Params, sub.Tasks, job.Procs, sub.Backend, jobID, sub.Command,
		time.Now().Format(timeLayout))
	return err
}

// ListSubmissions returns the user's submissions, newest first, optionally
// restricted to one job name
func (h *HistoryDB) ListSubmissions(usrID, name string) ([]SubmissionRecord, error) {
	query := `
		SELECT Id, usrID, name, workdir, params, tasks, procs, backend, jobid, command, submittime
		FROM submissions
		WHERE usrID=?`
	args := []interface{}{usrID}
	if name != "" {
		query += " AND name=?"
		args = append(args, name)
	}
	query += " ORDER BY submittime DESC, Id DESC"

	rows, err := h.Db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %v", err)
	}
	defer rows.Close()

	var records []SubmissionRecord
	for rows.Next() {
		var r SubmissionRecord
		err := rows.Scan(&r.ID, &r.User, &r.Name, &r.WorkDir, &r.Params, &r.Tasks, &r.Procs, &r.Backend, &r.JobID, &r.Command, &r.SubmitTime)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %v", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteSubmissions removes the user's records for name, or only the one with
// jobID when it is set. It returns the number of deleted rows.
func (h *HistoryDB) DeleteSubmissions(usrID, name, jobID string) (int64, error) {
	var result sql.Result
	var err error
	if jobID != "" {
		result, err = h.Db.Exec("DELETE FROM submissions WHERE usrID=? AND name=? AND jobid=?", usrID, name, jobID)
	} else {
		result, err = h.Db.Exec("DELETE FROM submissions WHERE usrID=? AND name=?", usrID, name)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to delete submissions: %v", err)
	}
	return result.RowsAffected()
}
