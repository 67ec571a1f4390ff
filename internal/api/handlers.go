package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/insight"
	"github.com/alexanderramin/nutrimind/internal/llm"
	"github.com/alexanderramin/nutrimind/internal/service"
	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, insight.ErrUnknownQuestion):
		return http.StatusNotFound
	case errors.Is(err, insight.ErrDataUnavailable), errors.Is(err, service.ErrNoModel):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInsightsDisabled):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) today(c *gin.Context) {
	force, _ := strconv.ParseBool(c.Query("refresh"))
	view, err := s.svc.Today(c.Request.Context(), s.now(), force)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) questions(c *gin.Context) {
	qs, err := s.svc.Questions(c.Request.Context(), s.now())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": qs})
}

func (s *Server) insight(c *gin.Context) {
	resp, err := s.svc.Ask(c.Request.Context(), domain.QuestionID(c.Param("id")), s.now())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) alerts(c *gin.Context) {
	alerts, err := s.svc.Alerts(c.Request.Context(), s.now())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

type dismissRequest struct {
	NutrientID string          `json:"nutrientId" binding:"required"`
	Severity   domain.Severity `json:"severity" binding:"required"`
}

func (s *Server) dismissAlert(c *gin.Context) {
	var req dismissRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := s.svc.DismissAlert(c.Request.Context(), req.NutrientID, req.Severity, s.now())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) modelStatus(c *gin.Context) {
	view, err := s.svc.ModelStatus(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	s.mu.Lock()
	pullErr := s.pullErr
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"model": view, "downloadError": pullErr})
}

// startDownload begins a background pull. Only one runs at a time.
func (s *Server) startDownload(c *gin.Context) {
	if _, _, err := s.svc.ModelProgress(); err != nil {
		s.fail(c, err)
		return
	}

	s.mu.Lock()
	if s.pulling {
		s.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "download already in progress"})
		return
	}
	s.pulling = true
	s.pullErr = ""
	s.mu.Unlock()

	go s.pull()
	c.JSON(http.StatusAccepted, gin.H{"status": string(llm.StatusDownloading)})
}

func (s *Server) pull() {
	err := s.svc.PullModel(context.Background(), nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pulling = false
	if err != nil {
		s.pullErr = err.Error()
		s.logger.Warn("model download failed", "error", err)
	}
}

// Pulling reports whether a background download is running.
func (s *Server) Pulling() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pulling
}

func (s *Server) cancelDownload(c *gin.Context) {
	if err := s.svc.CancelPull(); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
