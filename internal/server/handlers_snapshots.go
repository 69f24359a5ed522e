package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/simonvc/erpview/internal/ledger"
	"github.com/simonvc/erpview/internal/logging"
	"github.com/simonvc/erpview/internal/store"
)

type createSnapshotRequest struct {
	Label string `json:"label"`
}

type snapshotResponse struct {
	store.Snapshot
	Lines []ledger.TransactionLine `json:"lines,omitempty"`
}

func (s *Server) listSnapshots(w http.ResponseWriter, r *http.Request, ld *logging.LogData) error {
	if s.snaps == nil {
		return fail(w, errSnapshotsDisabled)
	}
	snaps, err := s.snaps.ListSnapshots(r.Context())
	if err != nil {
		return fail(w, err)
	}
	if snaps == nil {
		snaps = []store.Snapshot{}
	}
	ld.AddData("count", len(snaps))
	writeJSON(w, http.StatusOK, snaps)
	return nil
}

// createSnapshot archives the backend's current transaction lines.
func (s *Server) createSnapshot(w http.ResponseWriter, r *http.Request, ld *logging.LogData) error {
	if s.snaps == nil {
		return fail(w, errSnapshotsDisabled)
	}

	var req createSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return fail(w, fmt.Errorf("%w: invalid JSON: %w", errBadRequest, err))
	}

	lines, err := s.lines.TransactionLines(r.Context())
	if err != nil {
		return fail(w, fmt.Errorf("%w: %w", errBackend, err))
	}

	snap, err := s.snaps.SaveSnapshot(r.Context(), req.Label, s.source, lines)
	if err != nil {
		return fail(w, err)
	}
	ld.AddData("snapshot", snap.ID)
	ld.AddData("lines", snap.LineCount)
	writeJSON(w, http.StatusCreated, snap)
	return nil
}

func (s *Server) getSnapshot(w http.ResponseWriter, r *http.Request, ld *logging.LogData) error {
	if s.snaps == nil {
		return fail(w, errSnapshotsDisabled)
	}
	id := chi.URLParam(r, "id")
	ld.AddData("snapshot", id)

	snap, err := s.snaps.GetSnapshot(r.Context(), id)
	if err != nil {
		return fail(w, err)
	}
	resp := snapshotResponse{Snapshot: *snap}
	if r.URL.Query().Get("lines") == "true" {
		if resp.Lines, err = s.snaps.LoadSnapshot(r.Context(), id); err != nil {
			return fail(w, err)
		}
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) deleteSnapshot(w http.ResponseWriter, r *http.Request, ld *logging.LogData) error {
	if s.snaps == nil {
		return fail(w, errSnapshotsDisabled)
	}
	id := chi.URLParam(r, "id")
	ld.AddData("snapshot", id)

	if err := s.snaps.DeleteSnapshot(r.Context(), id); err != nil {
		return fail(w, err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
