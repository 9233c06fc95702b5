package manifest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const entryColumns = `id, batch_id, source_path, target_path, final_path,
    author, reasons, status, error_message, created_at, updated_at`

// SavePlan upserts planned entries for a batch. Rows whose source path has
// already reached a terminal status are left untouched so an interrupted run
// can be re-planned and resumed without repeating finished work.
func (s *Store) SavePlan(ctx context.Context, batchID string, entries []Entry) error {
	ctx = ensureContext(ctx)
	now := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin plan tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO transfers (
            batch_id, source_path, target_path, final_path,
            author, reasons, status, created_at, updated_at
        ) VALUES (?, ?, ?, '', ?, ?, ?, ?, ?)
        ON CONFLICT(source_path) DO UPDATE SET
            batch_id = excluded.batch_id,
            target_path = excluded.target_path,
            author = excluded.author,
            reasons = excluded.reasons,
            updated_at = excluded.updated_at
        WHERE transfers.status = 'planned'`)
	if err != nil {
		return fmt.Errorf("prepare plan upsert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		if _, err := stmt.ExecContext(ctx,
			batchID,
			entry.SourcePath,
			entry.TargetPath,
			entry.Author,
			joinReasons(entry.Reasons),
			StatusPlanned,
			now,
			now,
		); err != nil {
			return fmt.Errorf("upsert plan entry %s: %w", entry.SourcePath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit plan: %w", err)
	}
	return nil
}

// Pending returns all planned entries ordered by target path.
func (s *Store) Pending(ctx context.Context) ([]Entry, error) {
	return s.byStatus(ctx, StatusPlanned)
}

// ByStatus returns all entries in the given state.
func (s *Store) ByStatus(ctx context.Context, status Status) ([]Entry, error) {
	return s.byStatus(ctx, status)
}

func (s *Store) byStatus(ctx context.Context, status Status) ([]Entry, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM transfers WHERE status = ? ORDER BY target_path, source_path`,
		status,
	)
	if err != nil {
		return nil, fmt.Errorf("query transfers: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GetBySourcePath fetches an entry by its unique source path. Returns nil when
// no entry exists.
func (s *Store) GetBySourcePath(ctx context.Context, sourcePath string) (*Entry, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM transfers WHERE source_path = ?`, sourcePath)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return &entry, nil
}

// MarkResult records the executed outcome of one entry.
func (s *Store) MarkResult(ctx context.Context, id int64, status Status, finalPath, errorMessage string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.execWithRetry(ctx,
		`UPDATE transfers SET status = ?, final_path = ?, error_message = ?, updated_at = ? WHERE id = ?`,
		status, finalPath, errorMessage, now, id,
	)
	if err != nil {
		return fmt.Errorf("mark result: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark result rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("mark result: no transfer with id %d", id)
	}
	return nil
}

// Summarize counts entries per status for one batch. An empty batchID counts
// the whole store.
func (s *Store) Summarize(ctx context.Context, batchID string) (Summary, error) {
	ctx = ensureContext(ctx)

	query := `SELECT status, COUNT(1) FROM transfers GROUP BY status`
	args := []any{}
	if batchID != "" {
		query = `SELECT status, COUNT(1) FROM transfers WHERE batch_id = ? GROUP BY status`
		args = append(args, batchID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize transfers: %w", err)
	}
	defer rows.Close()

	var summary Summary
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Summary{}, fmt.Errorf("scan summary row: %w", err)
		}
		switch status {
		case StatusPlanned:
			summary.Planned = count
		case StatusCopied:
			summary.Copied = count
		case StatusSkipped:
			summary.Skipped = count
		case StatusMissing:
			summary.Missing = count
		case StatusFailed:
			summary.Failed = count
		}
	}
	return summary, rows.Err()
}

// ResetFailed returns failed entries to the planned state so the next execute
// run retries them.
func (s *Store) ResetFailed(ctx context.Context) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.execWithRetry(ctx,
		`UPDATE transfers SET status = ?, error_message = '', updated_at = ? WHERE status = ?`,
		StatusPlanned, now, StatusFailed,
	)
	if err != nil {
		return 0, fmt.Errorf("reset failed: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		entry     Entry
		reasons   string
		createdAt string
		updatedAt string
	)
	err := row.Scan(
		&entry.ID,
		&entry.BatchID,
		&entry.SourcePath,
		&entry.TargetPath,
		&entry.FinalPath,
		&entry.Author,
		&reasons,
		&entry.Status,
		&entry.ErrorMessage,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return Entry{}, err
	}
	entry.Reasons = splitReasons(reasons)
	entry.CreatedAt = parseTimestamp(createdAt)
	entry.UpdatedAt = parseTimestamp(updatedAt)
	return entry, nil
}

func parseTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}
