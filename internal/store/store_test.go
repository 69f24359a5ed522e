package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/simonvc/erpview/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleLines() []ledger.TransactionLine {
	return []ledger.TransactionLine{
		{ID: 3, JournalEntryID: 2, AccountID: 1, Date: "2024-02-01", EntryDesc: "Sale",
			AccountName: "Cash", Debit: decimal.RequireFromString("99.95")},
		{ID: 1, JournalEntryID: 1, AccountID: 1, Date: "2024-01-01", EntryDesc: "Opening",
			AccountName: "Cash", VendorName: "Acme", Debit: decimal.NewFromInt(100)},
		{ID: 2, JournalEntryID: 1, AccountID: 2, Date: "", EntryDesc: "Opening",
			AccountName: "", Credit: decimal.RequireFromString("0.01")},
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	snap, err := s.SaveSnapshot(ctx, "month end", "http://127.0.0.1:8000", sampleLines())
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, 3, snap.LineCount)

	lines, err := s.LoadSnapshot(ctx, snap.ID)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	want := sampleLines()
	for i := range want {
		assert.Equal(t, want[i].ID, lines[i].ID)
		assert.Equal(t, want[i].Date, lines[i].Date)
		assert.Equal(t, want[i].AccountName, lines[i].AccountName)
		assert.Equal(t, want[i].VendorName, lines[i].VendorName)
		assert.True(t, want[i].Debit.Equal(lines[i].Debit))
		assert.True(t, want[i].Credit.Equal(lines[i].Credit))
	}

	got, err := s.GetSnapshot(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "month end", got.Label)
	assert.Equal(t, "http://127.0.0.1:8000", got.Source)
	assert.Equal(t, 3, got.LineCount)
}

func TestLoadedSnapshotAggregates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	snap, err := s.SaveSnapshot(ctx, "", "", sampleLines())
	require.NoError(t, err)
	lines, err := s.LoadSnapshot(ctx, snap.ID)
	require.NoError(t, err)

	view := ledger.Aggregate(lines, ledger.Filter{})
	require.Len(t, view.Rows, 2)
	assert.Len(t, view.Skipped, 1)
	assert.Equal(t, "199.95", view.Totals.FinalBalance.String())
}

func TestEmptySnapshot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	snap, err := s.SaveSnapshot(ctx, "empty", "", nil)
	require.NoError(t, err)

	lines, err := s.LoadSnapshot(ctx, snap.ID)
	require.NoError(t, err)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestListSnapshots(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	snaps, err := s.ListSnapshots(ctx)
	require.NoError(t, err)
	assert.Empty(t, snaps)

	first, err := s.SaveSnapshot(ctx, "first", "", sampleLines()[:1])
	require.NoError(t, err)
	second, err := s.SaveSnapshot(ctx, "second", "", sampleLines())
	require.NoError(t, err)

	snaps, err = s.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, second.ID, snaps[0].ID)
	assert.Equal(t, 3, snaps[0].LineCount)
	assert.Equal(t, first.ID, snaps[1].ID)
	assert.Equal(t, 1, snaps[1].LineCount)
}

func TestDeleteSnapshot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	snap, err := s.SaveSnapshot(ctx, "gone", "", sampleLines())
	require.NoError(t, err)

	require.NoError(t, s.DeleteSnapshot(ctx, snap.ID))
	assert.ErrorIs(t, s.DeleteSnapshot(ctx, snap.ID), ErrSnapshotNotFound)

	_, err = s.LoadSnapshot(ctx, snap.ID)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	var n int
	require.NoError(t, s.reader.QueryRow(`SELECT COUNT(*) FROM snapshot_lines`).Scan(&n))
	assert.Zero(t, n)
}

func TestSnapshotLinesAreImmutable(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	snap, err := s.SaveSnapshot(ctx, "", "", sampleLines())
	require.NoError(t, err)

	_, err = s.writer.ExecContext(ctx,
		`UPDATE snapshot_lines SET debit = '0' WHERE snapshot_id = ?`, snap.ID)
	assert.ErrorContains(t, err, "immutable")
}
