package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Setup("warn", true, &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.Level)

	logger.Info("hidden")
	logger.Warn("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warning", entry["loglevel"])
	assert.Equal(t, "shown", entry["msg"])

	_, err = Setup("loud", false, nil)
	assert.Error(t, err)
}

func TestSetupFile(t *testing.T) {
	logger, closer, err := SetupFile("info", "")
	require.NoError(t, err)
	logger.Info("dropped")
	assert.NoError(t, closer.Close())

	path := filepath.Join(t.TempDir(), "tui.log")
	logger, closer, err = SetupFile("debug", path)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.Level)
	assert.NoError(t, closer.Close())
}

func TestWrap(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Setup("info", true, &buf)
	require.NoError(t, err)

	ok := Wrap("ledger", logger, func(w http.ResponseWriter, r *http.Request, ld *LogData) error {
		ld.AddData("rows", 3)
		w.WriteHeader(http.StatusOK)
		return nil
	})
	rec := httptest.NewRecorder()
	ok(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ledger", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Handler.ledger.Complete", entry["msg"])
	assert.EqualValues(t, 3, entry["rows"])
	assert.Equal(t, "/api/v1/ledger", entry["path"])
	assert.Contains(t, entry, "duration_ms")

	buf.Reset()
	failing := Wrap("ledger", logger, func(w http.ResponseWriter, r *http.Request, ld *LogData) error {
		return errors.New("backend down")
	})
	failing(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	entry = nil
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Handler.ledger.Error", entry["msg"])
	assert.Equal(t, "backend down", entry["error"])
}
