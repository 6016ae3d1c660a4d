// Command cxserver exposes the preprocess/lex/bind pipeline as an HTTP API:
// POST /v1/translation-units runs one posted source file through
// internal/pipeline and returns its diagnostics and token count as JSON;
// GET /metrics serves Prometheus exposition for scraping.
//
// Grounded on jinterlante1206-AleutianLocal/services/trace/handlers.go's
// handler shape (ShouldBindJSON into a request struct carrying `binding`
// tags, a per-request ID threaded through structured logging, JSON error
// responses with a machine-readable Code) and
// jinterlante1206-AleutianLocal/services/orchestrator/main.go's gin engine
// setup (gin.Default(), routes registered on the engine, engine.Run on a
// configurable port).
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/roberto-raggi/cplusplus-go/internal/config"
	"github.com/roberto-raggi/cplusplus-go/internal/logger"
	"github.com/roberto-raggi/cplusplus-go/internal/pipeline"
	"github.com/roberto-raggi/cplusplus-go/internal/telemetry"
)

// sourceFileExtensions are the file_name suffixes the cxsource validator
// tag accepts; anything else is rejected before it ever reaches the
// pipeline.
var sourceFileExtensions = map[string]bool{
	".c": true, ".cc": true, ".cpp": true, ".cxx": true, ".c++": true,
	".h": true, ".hh": true, ".hpp": true, ".hxx": true,
	".m": true, ".mm": true,
}

func validateSourceFileName(fl validator.FieldLevel) bool {
	return sourceFileExtensions[strings.ToLower(filepath.Ext(fl.Field().String()))]
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("cxsource", validateSourceFileName)
	}
}

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cxserver_requests_total",
	Help: "Total HTTP requests handled, by route and status class.",
}, []string{"route", "status_class"})

// TranslationUnitRequest is the POST /v1/translation-units request body.
type TranslationUnitRequest struct {
	FileName string `json:"file_name" binding:"required,cxsource"`
	Source   string `json:"source" binding:"required"`

	QtMoc   bool `json:"qt_moc"`
	ObjC    bool `json:"objc"`
	NoCxx11 bool `json:"no_cxx11"`
}

// DiagnosticResponse mirrors one logger.Diagnostic in wire form.
type DiagnosticResponse struct {
	Severity string  `json:"severity"`
	File     string  `json:"file,omitempty"`
	Line     int     `json:"line,omitempty"`
	Column   int     `json:"column,omitempty"`
	Text     string  `json:"text"`
	Notes    []string `json:"notes,omitempty"`
}

// TranslationUnitResponse is the POST /v1/translation-units response body.
type TranslationUnitResponse struct {
	FileName    string                `json:"file_name"`
	TokenCount  int                   `json:"token_count"`
	HasErrors   bool                  `json:"has_errors"`
	Diagnostics []DiagnosticResponse  `json:"diagnostics"`
}

// ErrorResponse is returned for any 4xx/5xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func diagnosticResponses(diags []logger.Diagnostic) []DiagnosticResponse {
	out := make([]DiagnosticResponse, 0, len(diags))
	for _, d := range diags {
		resp := DiagnosticResponse{Severity: d.Severity.String(), Text: d.Text, Notes: d.Notes}
		if d.Location != nil {
			resp.File = d.Location.File
			resp.Line = d.Location.Line
			resp.Column = d.Location.Column
		}
		out = append(out, resp)
	}
	return out
}

func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}

func handleCreateTranslationUnit(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	log := slog.With("request_id", requestID, "handler", "handleCreateTranslationUnit")

	var req TranslationUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("invalid request body", "error", err)
		requestsTotal.WithLabelValues("/v1/translation-units", "4xx").Inc()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_REQUEST"})
		return
	}

	flags := config.DefaultLexerFlags()
	flags.QtMocRunEnabled = req.QtMoc
	flags.ObjCEnabled = req.ObjC
	if req.NoCxx11 {
		flags.Cxx0xEnabled = false
	}

	client := logger.NewDeferClient()
	result := pipeline.Run(pipeline.Unit{
		FileName:            req.FileName,
		Source:              req.Source,
		LexerFlags:          flags,
		PreprocessorOptions: config.DefaultPreprocessorOptions(),
		Diagnostics:         client,
	})
	if result.Err != nil {
		log.Error("pipeline failed", "error", result.Err)
		requestsTotal.WithLabelValues("/v1/translation-units", "5xx").Inc()
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: result.Err.Error(), Code: "PIPELINE_FAILED"})
		return
	}

	requestsTotal.WithLabelValues("/v1/translation-units", "2xx").Inc()
	c.JSON(http.StatusOK, TranslationUnitResponse{
		FileName:    req.FileName,
		TokenCount:  result.TranslationUnit.TokenCount(),
		HasErrors:   client.HasErrors(),
		Diagnostics: diagnosticResponses(client.Diagnostics()),
	})
}

func newEngine() *gin.Engine {
	r := gin.Default()
	r.POST("/v1/translation-units", handleCreateTranslationUnit)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func main() {
	if shutdown, err := telemetry.Init(context.Background(), "cxserver"); err == nil {
		defer shutdown(context.Background())
	} else {
		slog.Warn("telemetry: continuing without a configured tracer provider", "error", err)
	}

	port := os.Getenv("CXSERVER_PORT")
	if port == "" {
		port = "8080"
	}
	if err := newEngine().Run(":" + port); err != nil {
		slog.Error("cxserver: server stopped", "error", err)
		os.Exit(1)
	}
}
