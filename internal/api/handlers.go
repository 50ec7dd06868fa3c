package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/lifecompass/internal/assessment"
	"github.com/abhisek/lifecompass/internal/bank"
	"github.com/abhisek/lifecompass/internal/insight"
	"github.com/abhisek/lifecompass/internal/store"
)

const maxListLimit = 100

type bankResponse struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Scale      bank.Scale      `json:"scale"`
	GroupSize  int             `json:"group_size"`
	Categories []bank.Category `json:"categories"`
	Questions  []bank.Question `json:"questions"`
}

type assessmentRequest struct {
	Responses []int `json:"responses" binding:"required"`
}

type assessmentResponse struct {
	*assessment.Report
	ReportID int              `json:"report_id,omitempty"`
	Insight  *insight.Insight `json:"insight,omitempty"`
}

type reportView struct {
	ID        int                       `json:"id"`
	Sequence  int64                     `json:"sequence"`
	Timestamp time.Time                 `json:"timestamp"`
	SessionID string                    `json:"session_id"`
	BankID    string                    `json:"bank_id"`
	Scores    []store.CategoryScoreData `json:"scores"`
	Top       []store.CategoryScoreData `json:"top"`
	Insight   string                    `json:"insight,omitempty"`
}

func newReportView(r store.ReportRecord) reportView {
	return reportView{
		ID:        r.ID,
		Sequence:  r.Sequence,
		Timestamp: r.Timestamp,
		SessionID: r.SessionID,
		BankID:    r.BankID,
		Scores:    r.Scores,
		Top:       r.Top,
		Insight:   r.Insight,
	}
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getBank(c *gin.Context) {
	b := s.opts.Bank
	c.JSON(http.StatusOK, bankResponse{
		ID:         b.ID,
		Title:      b.Title,
		Scale:      b.Scale,
		GroupSize:  b.GroupSize,
		Categories: b.Categories,
		Questions:  b.Questions,
	})
}

func (s *Server) createAssessment(c *gin.Context) {
	var req assessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := assessment.FromResponses(s.opts.Bank, req.Responses)
	if err != nil {
		if errors.Is(err, assessment.ErrIndexOutOfRange) || errors.Is(err, assessment.ErrValueOutOfRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := sess.Submit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	report, err := sess.Report(s.opts.TopK)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	resp := assessmentResponse{Report: report}

	if s.opts.Insight != nil {
		resp.Insight = s.opts.Insight.Generate(ctx, insight.Input{
			Bank:   sess.Bank(),
			Scores: report.Scores,
			Top:    report.Top,
		})
	}

	if s.opts.Reports != nil {
		id, err := s.opts.Reports.Save(ctx, report.Record(resp.Insight.Text()))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		resp.ReportID = id
	}

	// Delivery is best effort; the report has already been produced.
	if err := s.opts.Publisher.PublishReport(ctx, report); err != nil {
		s.logger.Warn("publish report failed", zap.String("session_id", report.SessionID), zap.Error(err))
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) listReports(c *gin.Context) {
	if !s.historyEnabled(c) {
		return
	}

	opts := store.QueryOpts{Limit: 20}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		opts.Limit = min(n, maxListLimit)
	}
	if v := c.Query("after"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "after must be an integer"})
			return
		}
		opts.After = n
	}

	records, err := s.opts.Reports.List(c.Request.Context(), opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	views := make([]reportView, len(records))
	for i, r := range records {
		views[i] = newReportView(r)
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) getReport(c *gin.Context) {
	if !s.historyEnabled(c) {
		return
	}
	id, ok := reportID(c)
	if !ok {
		return
	}

	rec, err := s.opts.Reports.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	c.JSON(http.StatusOK, newReportView(*rec))
}

func (s *Server) deleteReport(c *gin.Context) {
	if !s.historyEnabled(c) {
		return
	}
	id, ok := reportID(c)
	if !ok {
		return
	}

	deleted, err := s.opts.Reports.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) historyEnabled(c *gin.Context) bool {
	if s.opts.Reports == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report history is not enabled"})
		return false
	}
	return true
}

func reportID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return 0, false
	}
	return id, true
}
