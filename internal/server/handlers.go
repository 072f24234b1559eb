package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"aidetect/internal/analysis"
	"aidetect/internal/database"
	apperrors "aidetect/internal/errors"
	"aidetect/internal/scanner"
)

// AnalyzeRequest is one code sample submitted for scoring.
type AnalyzeRequest struct {
	Code     string `json:"code" binding:"required"`
	Language string `json:"language,omitempty"`
}

// ScanRequest asks for a repository scan. Branch is optional; the clone's
// default branch is used when empty.
type ScanRequest struct {
	URL    string `json:"url" binding:"required"`
	Branch string `json:"branch,omitempty"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	start := time.Now()

	var req AnalyzeRequest
	if err := c.BindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("invalid request body", err.Error())
		apperrors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	if err := s.security.ValidateSample(req.Code); err != nil {
		appErr := apperrors.NewValidationError(err.Error())
		apperrors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	lang := analysis.Language(req.Language)
	if lang == "" {
		lang = analysis.LangUnknown
	}

	result, err := s.analyzer.Analyze(analysis.SourceSample{Text: req.Code, Language: lang})
	if err != nil {
		appErr := apperrors.ToAppError(err)
		apperrors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	s.metrics.IncrementAnalysis()
	s.logger.AnalysisLogger(result.Lines, result.AIProbability,
		string(result.Confidence), string(result.Verdict), time.Since(start), false)

	c.JSON(http.StatusOK, gin.H{
		"result":              result,
		"insufficient_signal": result.InsufficientSignal(),
	})
}

func (s *Server) handleScan(c *gin.Context) {
	var req ScanRequest
	if err := c.BindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("invalid request body", err.Error())
		apperrors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	result, err := s.scanner.ScanRepository(c.Request.Context(), req.URL, req.Branch)
	if err != nil {
		appErr := apperrors.ToAppError(err)
		apperrors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	s.metrics.IncrementScan()
	s.metrics.AddFilesScanned(result.Stats.FilesScanned)

	record := recordFromResult(result)
	if err := s.repo.SaveScan(record, fileRecordsFor(record.ID, result.Files)); err != nil {
		// The scan itself succeeded; history persistence is best effort.
		s.logger.APIErrorLogger(err, c.Request.Method, c.Request.URL.Path,
			c.ClientIP(), http.StatusInternalServerError)
	}

	c.JSON(http.StatusOK, gin.H{
		"scan_id": record.ID,
		"scan":    result,
	})
}

func (s *Server) handleListScans(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	records, err := s.repo.ListScans(limit)
	if err != nil {
		appErr := apperrors.ToAppError(err)
		apperrors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"scans": records})
}

func (s *Server) handleGetScan(c *gin.Context) {
	id := c.Param("id")

	record, err := s.repo.GetScan(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "scan not found"})
		return
	}

	files, err := s.repo.GetScanFiles(id)
	if err != nil {
		appErr := apperrors.ToAppError(err)
		apperrors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scan":  record,
		"files": files,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"metrics":   s.metrics.GetStats(),
		"cache":     s.cache.Stats(),
		"database":  s.db.GetPoolStats(),
	})
}

func (s *Server) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.metrics.GetStats())
}

func recordFromResult(result *scanner.Result) *database.ScanRecord {
	record := database.NewScanRecord(result.Source, result.Branch)
	record.FilesScanned = result.Stats.FilesScanned
	record.FilesFailed = result.Stats.FilesFailed
	record.AvgProbability = result.Stats.AvgProbability
	record.MedianProbability = result.Stats.MedianProbability
	record.HighRiskCount = len(result.Stats.HighRisk)
	record.VerdictCounts = result.Stats.VerdictCounts
	record.DurationMs = result.Duration.Milliseconds()
	return record
}

func fileRecordsFor(scanID string, files []analysis.FileResult) []database.ScanFileRecord {
	records := make([]database.ScanFileRecord, 0, len(files))
	for _, f := range files {
		records = append(records, database.ScanFileRecord{
			ScanID:        scanID,
			Path:          f.Path,
			Language:      string(f.Language),
			AIProbability: f.AIProbability,
			Confidence:    string(f.Confidence),
			Verdict:       string(f.Verdict),
			Lines:         f.Lines,
			Error:         f.Error,
		})
	}
	return records
}
