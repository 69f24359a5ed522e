package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/simonvc/erpview/internal/ledger"
	"github.com/simonvc/erpview/internal/logging"
)

var (
	errBackend    = errors.New("erp backend unavailable")
	errBadRequest = errors.New("bad request")
)

type skippedLine struct {
	ID             int64  `json:"id"`
	JournalEntryID int64  `json:"journal_entry_id"`
	Date           string `json:"date"`
	Reason         string `json:"reason"`
}

type ledgerResponse struct {
	Rows    []ledger.Row  `json:"rows"`
	Totals  ledger.Totals `json:"totals"`
	Skipped []skippedLine `json:"skipped"`
	Source  string        `json:"source"`
}

type optionsResponse struct {
	Accounts []string `json:"accounts"`
	Vendors  []string `json:"vendors"`
}

func (s *Server) ledgerView(w http.ResponseWriter, r *http.Request, ld *logging.LogData) error {
	q := r.URL.Query()
	f, err := ledger.NewFilter(q.Get("account"), q.Get("vendor"), q.Get("q"), q.Get("from"), q.Get("to"))
	if err != nil {
		return fail(w, err)
	}

	lines, source, err := s.fetchLines(r.Context(), q.Get("snapshot"))
	if err != nil {
		return fail(w, err)
	}

	view := ledger.Aggregate(lines, f)
	ld.AddData("source", source)
	ld.AddData("lines", len(lines))
	ld.AddData("rows", len(view.Rows))
	ld.AddData("skipped", len(view.Skipped))

	resp := ledgerResponse{
		Rows:    view.Rows,
		Totals:  view.Totals,
		Skipped: make([]skippedLine, 0, len(view.Skipped)),
		Source:  source,
	}
	for _, sk := range view.Skipped {
		resp.Skipped = append(resp.Skipped, skippedLine{
			ID:             sk.Line.ID,
			JournalEntryID: sk.Line.JournalEntryID,
			Date:           sk.Line.Date,
			Reason:         sk.Err.Error(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) ledgerOptions(w http.ResponseWriter, r *http.Request, ld *logging.LogData) error {
	lines, source, err := s.fetchLines(r.Context(), r.URL.Query().Get("snapshot"))
	if err != nil {
		return fail(w, err)
	}
	ld.AddData("source", source)

	writeJSON(w, http.StatusOK, optionsResponse{
		Accounts: ledger.DistinctAccounts(lines),
		Vendors:  ledger.DistinctVendors(lines),
	})
	return nil
}

// fetchLines reads a stored snapshot when id is set, otherwise asks the
// backend for a fresh one.
func (s *Server) fetchLines(ctx context.Context, id string) ([]ledger.TransactionLine, string, error) {
	if id != "" {
		if s.snaps == nil {
			return nil, "", errSnapshotsDisabled
		}
		lines, err := s.snaps.LoadSnapshot(ctx, id)
		if err != nil {
			return nil, "", err
		}
		return lines, "snapshot:" + id, nil
	}

	lines, err := s.lines.TransactionLines(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", errBackend, err)
	}
	return lines, s.source, nil
}
