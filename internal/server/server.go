// Package server exposes the correction engine over HTTP.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rdtech2020/pratik-grammars/internal"
	"github.com/rdtech2020/pratik-grammars/internal/config"
	"github.com/rdtech2020/pratik-grammars/internal/corrector"
	"github.com/rdtech2020/pratik-grammars/internal/detector"
	"github.com/rdtech2020/pratik-grammars/internal/model"
	"github.com/rdtech2020/pratik-grammars/internal/store"
)

// TextRequest is the body of a single-correction request.
type TextRequest struct {
	Text string `json:"text" binding:"required"`
}

// BatchRequest is the body of a batch-correction request.
type BatchRequest struct {
	Texts []string `json:"texts" binding:"required"`
}

// CorrectionResponse pairs the input with the corrected output. Callers who
// care whether a correction was made compare the two fields.
type CorrectionResponse struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
}

// Server wires the corrector, the optional store, and the optional language
// gate behind a gin router.
type Server struct {
	corr    *corrector.Corrector
	adapter *model.Adapter
	db      *store.Store
	det     *detector.Detector
	log     *zap.Logger
	cfg     config.ServerSettings
}

// New builds a Server. adapter, db, and det may each be nil: health then
// omits model info, corrections are not persisted, and non-English input is
// not filtered, respectively.
func New(corr *corrector.Corrector, adapter *model.Adapter, db *store.Store, det *detector.Detector, log *zap.Logger, cfg config.ServerSettings) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{corr: corr, adapter: adapter, db: db, det: det, log: log, cfg: cfg}
}

// Router builds the HTTP routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", s.handleInfo)
	r.GET("/health", s.handleHealth)
	r.POST("/correct", s.handleCorrect)
	r.POST("/correct/batch", s.handleBatch)
	r.GET("/history", s.handleHistory)
	r.GET("/analytics/stats", s.handleStats)

	return r
}

// Run serves the router on the configured host and port.
func (s *Server) Run() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.log.Info("listening", zap.String("addr", addr))
	return s.Router().Run(addr)
}

func (s *Server) handleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Grammar Correction API",
		"status":  "running",
		"endpoints": gin.H{
			"grammar_correction": "/correct",
			"batch_correction":   "/correct/batch",
			"history":            "/history",
			"analytics":          "/analytics/stats",
			"system":             "/health",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	resp := gin.H{"status": "healthy"}
	if s.adapter != nil {
		resp["model"] = s.adapter.Info()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCorrect(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text field is required"})
		return
	}

	corrected := s.correctOne(c, req.Text)
	c.JSON(http.StatusOK, CorrectionResponse{Original: req.Text, Corrected: corrected})
}

func (s *Server) handleBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "texts field is required"})
		return
	}

	results := make([]CorrectionResponse, len(req.Texts))
	for i, text := range req.Texts {
		results[i] = CorrectionResponse{Original: text, Corrected: s.correctOne(c, text)}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// correctOne runs one text through the language gate, the memory cache, and
// the engine, persisting the outcome when a store is attached.
func (s *Server) correctOne(c *gin.Context, text string) string {
	ctx := c.Request.Context()

	if s.det != nil && !s.det.IsEnglish(text) {
		s.log.Debug("non-English input passed through unchanged")
		return text
	}

	if s.db != nil {
		if cached, found, err := s.db.GetCached(ctx, text); err == nil && found {
			return cached
		}
	}

	corrected := s.corr.Correct(ctx, text)

	if s.db != nil {
		rec := internal.CorrectionRecord{
			ID:            uuid.New().String(),
			OriginalText:  text,
			CorrectedText: corrected,
			Changed:       corrected != text,
			CreatedAt:     time.Now(),
		}
		if err := s.db.SaveCorrection(ctx, rec); err != nil {
			s.log.Warn("failed to save correction", zap.Error(err))
		}
		if err := s.db.SaveToMemory(ctx, text, corrected); err != nil {
			s.log.Warn("failed to update correction memory", zap.Error(err))
		}
	}

	return corrected
}

func (s *Server) handleHistory(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history store not configured"})
		return
	}

	limit := s.cfg.PageSize
	if v, err := parsePositive(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}

	offset := 0
	if v, err := parsePositive(c.Query("offset")); err == nil {
		offset = v
	}

	records, err := s.db.ListCorrections(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	if records == nil {
		records = []internal.CorrectionRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"corrections": records, "limit": limit, "offset": offset})
}

func (s *Server) handleStats(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history store not configured"})
		return
	}

	stats, err := s.db.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func parsePositive(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty")
	}
	var v int
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative")
	}
	return v, nil
}
