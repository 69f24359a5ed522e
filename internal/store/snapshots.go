package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simonvc/erpview/internal/ledger"
)

// Fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Snapshot describes one archived fetch of transaction lines.
type Snapshot struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	LineCount int       `json:"line_count"`
}

// SaveSnapshot writes lines under a new snapshot id in a single
// transaction. Line order is preserved.
func (s *Store) SaveSnapshot(ctx context.Context, label, source string, lines []ledger.TransactionLine) (*Snapshot, error) {
	snap := &Snapshot{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Label:     label,
		Source:    source,
		CreatedAt: time.Now().UTC(),
		LineCount: len(lines),
	}

	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, label, source, created_at) VALUES (?, ?, ?, ?)`,
		snap.ID, snap.Label, snap.Source, snap.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_lines
			(snapshot_id, seq, line_id, journal_entry_id, account_id, date,
			 entry_desc, account_name, vendor_name, debit, credit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("prepare line insert: %w", err)
	}
	defer stmt.Close()

	for i, l := range lines {
		_, err = stmt.ExecContext(ctx,
			snap.ID, i, l.ID, l.JournalEntryID, l.AccountID, l.Date,
			l.EntryDesc, l.AccountName, l.VendorName, l.Debit.String(), l.Credit.String(),
		)
		if err != nil {
			return nil, fmt.Errorf("insert line %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return snap, nil
}

// ListSnapshots returns all snapshots, newest first.
func (s *Store) ListSnapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.reader.QueryContext(ctx, `
		SELECT s.id, s.label, s.source, s.created_at, COUNT(l.seq)
		FROM snapshots s
		LEFT JOIN snapshot_lines l ON l.snapshot_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at DESC, s.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, *snap)
	}
	return snaps, rows.Err()
}

func (s *Store) GetSnapshot(ctx context.Context, id string) (*Snapshot, error) {
	row := s.reader.QueryRowContext(ctx, `
		SELECT s.id, s.label, s.source, s.created_at,
			(SELECT COUNT(*) FROM snapshot_lines l WHERE l.snapshot_id = s.id)
		FROM snapshots s
		WHERE s.id = ?`, id)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	return snap, err
}

// LoadSnapshot returns the archived lines in the order they were saved.
func (s *Store) LoadSnapshot(ctx context.Context, id string) ([]ledger.TransactionLine, error) {
	if _, err := s.GetSnapshot(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.reader.QueryContext(ctx, `
		SELECT line_id, journal_entry_id, account_id, date, entry_desc,
			account_name, vendor_name, debit, credit
		FROM snapshot_lines
		WHERE snapshot_id = ?
		ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	defer rows.Close()

	lines := []ledger.TransactionLine{}
	for rows.Next() {
		var l ledger.TransactionLine
		var debit, credit string
		if err := rows.Scan(&l.ID, &l.JournalEntryID, &l.AccountID, &l.Date, &l.EntryDesc,
			&l.AccountName, &l.VendorName, &debit, &credit); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		if l.Debit, err = decimal.NewFromString(debit); err != nil {
			return nil, fmt.Errorf("line %d debit: %w", l.ID, err)
		}
		if l.Credit, err = decimal.NewFromString(credit); err != nil {
			return nil, fmt.Errorf("line %d credit: %w", l.ID, err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (s *Store) DeleteSnapshot(ctx context.Context, id string) error {
	res, err := s.writer.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSnapshotNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(sc scanner) (*Snapshot, error) {
	var snap Snapshot
	var createdAt string
	if err := sc.Scan(&snap.ID, &snap.Label, &snap.Source, &createdAt, &snap.LineCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan snapshot: %w", err)
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	snap.CreatedAt = t
	return &snap, nil
}
