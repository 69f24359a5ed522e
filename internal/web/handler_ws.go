package web

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/coder/websocket"
	"github.com/creack/pty/v2"
	"github.com/sirupsen/logrus"
)

type resizeMsg struct {
	Type string `json:"type"`
	Cols uint16 `json:"cols"`
	Rows uint16 `json:"rows"`
}

// tuiCommand builds the child process for one browser terminal.
func (s *Server) tuiCommand() *exec.Cmd {
	cmd := exec.Command(s.exe, "tui", "--server", s.apiAddr)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color", "COLORTERM=truecolor")
	return cmd
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	browserID := s.sessionID(w, r)

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.log.WithError(err).Warn("Web.Accept.Error")
		return
	}
	defer conn.CloseNow()

	connID := s.addSession(browserID)
	defer s.removeSession(connID)
	log := s.log.WithFields(logrus.Fields{"session": browserID, "conn": connID})

	cols := parseUint16(r.URL.Query().Get("cols"), 80)
	rows := parseUint16(r.URL.Query().Get("rows"), 24)

	cmd := s.tuiCommand()
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: rows, Cols: cols})
	if err != nil {
		log.WithError(err).Error("Web.Pty.Error")
		conn.Close(websocket.StatusInternalError, "failed to start pty")
		return
	}
	log.Info("Web.Session.Start")
	defer log.Info("Web.Session.End")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var once sync.Once
	cleanup := func() {
		cancel()
		ptmx.Close()
		if cmd.Process != nil {
			cmd.Process.Kill()
			cmd.Wait()
		}
	}
	defer once.Do(cleanup)

	// Binary frames skip the UTF-8 validation text frames get.
	go func() {
		buf := make([]byte, 32*1024)
		for {
			n, err := ptmx.Read(buf)
			if err != nil {
				log.WithError(err).Debug("Web.Pty.Closed")
				once.Do(cleanup)
				conn.Close(websocket.StatusNormalClosure, "process exited")
				return
			}
			if err := conn.Write(ctx, websocket.MessageBinary, buf[:n]); err != nil {
				log.WithError(err).Debug("Web.Write.Error")
				once.Do(cleanup)
				return
			}
		}
	}()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			log.WithError(err).Debug("Web.Read.Closed")
			return
		}

		if rs, ok := parseResize(data); ok {
			pty.Setsize(ptmx, &pty.Winsize{Rows: rs.Rows, Cols: rs.Cols})
			continue
		}

		if _, err := ptmx.Write(data); err != nil {
			return
		}
	}
}

// parseResize recognises the {"type":"resize"} control message the page
// sends; anything else is keyboard input.
func parseResize(data []byte) (resizeMsg, bool) {
	var rs resizeMsg
	if !strings.HasPrefix(string(data), "{") {
		return rs, false
	}
	if json.Unmarshal(data, &rs) != nil || rs.Type != "resize" || rs.Cols == 0 || rs.Rows == 0 {
		return rs, false
	}
	return rs, true
}

func parseUint16(s string, def uint16) uint16 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil || v == 0 {
		return def
	}
	return uint16(v)
}
