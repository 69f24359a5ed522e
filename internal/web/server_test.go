package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	s, err := NewServer("127.0.0.1:0", "http://127.0.0.1:8000", log)
	require.NoError(t, err)
	return s
}

func TestIndexSetsSessionCookie(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "xterm")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.Regexp(t, uuidRe, cookies[0].Value)

	// An existing session is reused.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Empty(t, rec.Result().Cookies())
}

func TestHealthCountsSessions(t *testing.T) {
	s := newTestServer(t)
	connID := s.addSession("browser")

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 1, body["sessions"])

	s.removeSession(connID)
	assert.Zero(t, s.activeSessions())
}

func TestTUICommand(t *testing.T) {
	s := newTestServer(t)
	cmd := s.tuiCommand()
	assert.Equal(t, []string{s.exe, "tui", "--server", "http://127.0.0.1:8000"}, cmd.Args)
	assert.Contains(t, cmd.Env, "TERM=xterm-256color")
}

func TestParseResize(t *testing.T) {
	rs, ok := parseResize([]byte(`{"type":"resize","cols":120,"rows":40}`))
	require.True(t, ok)
	assert.Equal(t, uint16(120), rs.Cols)
	assert.Equal(t, uint16(40), rs.Rows)

	_, ok = parseResize([]byte(`{"type":"resize","cols":0,"rows":40}`))
	assert.False(t, ok)
	_, ok = parseResize([]byte(`{"not":"json"`))
	assert.False(t, ok)
	_, ok = parseResize([]byte("j"))
	assert.False(t, ok)
}

func TestParseUint16(t *testing.T) {
	assert.Equal(t, uint16(80), parseUint16("", 80))
	assert.Equal(t, uint16(132), parseUint16("132", 80))
	assert.Equal(t, uint16(24), parseUint16("70000", 24))
	assert.Equal(t, uint16(24), parseUint16("0", 24))
	assert.Equal(t, uint16(24), parseUint16("abc", 24))
}
