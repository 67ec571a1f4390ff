package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/nutrimind/internal/llm"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     sameHostOrigin,
}

// sameHostOrigin admits clients that send no Origin (CLIs, scripts) and
// browser pages served from the API's own host.
func sameHostOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// ProgressFrame is one websocket message of the download stream.
type ProgressFrame struct {
	Status   llm.ModelStatus `json:"status"`
	Progress llm.Progress    `json:"progress"`
	Pulling  bool            `json:"pulling"`
	Error    string          `json:"error,omitempty"`
}

// finished is true once nothing more will change without a new request.
func (f ProgressFrame) finished() bool {
	if f.Pulling {
		return false
	}
	return f.Progress.Done || f.Status != llm.StatusDownloading
}

func (s *Server) frame() (ProgressFrame, error) {
	p, status, err := s.svc.ModelProgress()
	if err != nil {
		return ProgressFrame{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return ProgressFrame{Status: status, Progress: p, Pulling: s.pulling, Error: s.pullErr}, nil
}

// downloadWS pushes progress frames until the download settles or the
// client goes away.
func (s *Server) downloadWS(c *gin.Context) {
	if _, err := s.frame(); err != nil {
		s.fail(c, err)
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.ProgressInterval)
	defer ticker.Stop()
	for {
		f, err := s.frame()
		if err != nil {
			return
		}
		if err := conn.WriteJSON(f); err != nil {
			return
		}
		if f.finished() {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, string(f.Status)))
			return
		}
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
