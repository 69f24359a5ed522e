package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/simonvc/erpview/internal/client"
	"github.com/simonvc/erpview/internal/ledger"
	"github.com/simonvc/erpview/internal/store"
)

var errSnapshotsDisabled = errors.New("snapshot archive not configured")

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// fail writes err to the client and hands it back for the handler log.
func fail(w http.ResponseWriter, err error) error {
	writeError(w, mapError(err), err.Error())
	return err
}

func mapError(err error) int {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, store.ErrSnapshotNotFound), errors.Is(err, errSnapshotsDisabled):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInvalidDate),
		errors.Is(err, ledger.ErrInvalidDateRange),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.As(err, &apiErr), errors.Is(err, errBackend):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
