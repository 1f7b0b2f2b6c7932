package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sant0-9/firpredict/internal/document"
	"github.com/sant0-9/firpredict/internal/predict"
	"github.com/sant0-9/firpredict/internal/sections"
	"github.com/sant0-9/firpredict/internal/session"
)

type predictRequest struct {
	Case string `json:"case"`
}

// PredictionView is a record with its reply already parsed for display
type PredictionView struct {
	Record  session.Record         `json:"record"`
	Lines   []sections.Line        `json:"lines"`
	Display []sections.DisplayUnit `json:"display"`
}

func newPredictionView(rec session.Record, lines []sections.Line) PredictionView {
	if lines == nil {
		lines = sections.Parse(rec.Reply)
	}
	return PredictionView{
		Record:  rec,
		Lines:   lines,
		Display: sections.ToDisplay(lines),
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	success(c, gin.H{
		"status":      "ok",
		"provider":    s.predictor.ProviderName(),
		"predictions": s.predictor.History().Len(),
	})
}

func (s *Server) handlePredict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "request body must be JSON with a \"case\" field")
		return
	}

	res, err := s.predictor.Predict(c.Request.Context(), req.Case)
	switch {
	case errors.Is(err, predict.ErrEmptyInput):
		fail(c, http.StatusBadRequest, ErrCodeEmptyInput, "Please enter a case description.")
		return
	case errors.Is(err, predict.ErrPredictorUnavailable):
		_ = c.Error(err)
		fail(c, http.StatusBadGateway, ErrCodeUnavailable, "The prediction service is unavailable. Try again later.")
		return
	case err != nil:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "prediction failed")
		return
	}

	created(c, newPredictionView(res.Record, res.Lines))
}

func (s *Server) handleList(c *gin.Context) {
	records := s.predictor.History().List()
	views := make([]PredictionView, 0, len(records))
	for _, r := range records {
		views = append(views, newPredictionView(r, nil))
	}
	success(c, gin.H{
		"count":       len(views),
		"predictions": views,
	})
}

func (s *Server) handleClear(c *gin.Context) {
	h := s.predictor.History()
	n := h.Len()
	h.Clear()
	s.logger.Info("history cleared", zap.Int("records", n))
	success(c, gin.H{"cleared": n}, "History cleared.")
}

func (s *Server) handleGet(c *gin.Context) {
	rec, ok := s.predictor.History().Get(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "prediction not found")
		return
	}
	success(c, newPredictionView(rec, nil))
}

func (s *Server) handleExport(c *gin.Context) {
	rec, ok := s.predictor.History().Get(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "prediction not found")
		return
	}

	format, err := document.ParseFormat(c.DefaultQuery("format", s.exportFormat))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	exporter, err := document.ExporterFor(format)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	report := document.Build(rec.Case, sections.Parse(rec.Reply))
	data, meta, err := document.Render(exporter, report)
	if err != nil {
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "export failed")
		return
	}

	s.logger.Info("export",
		zap.String("record", rec.ID),
		zap.String("format", string(meta.Format)),
		zap.Int64("bytes", meta.SizeBytes),
	)

	c.Header("Content-Disposition", `attachment; filename="`+meta.FileName+`"`)
	c.Header("Content-Length", strconv.FormatInt(meta.SizeBytes, 10))
	c.Data(http.StatusOK, meta.MIMEType, data)
}
