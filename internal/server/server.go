// Package server exposes the import pipeline over HTTP.
package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/kmee/trade-import/internal/allocation"
	"github.com/kmee/trade-import/internal/invoice"
	"github.com/kmee/trade-import/internal/model"
	"github.com/kmee/trade-import/internal/processor"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
	Logger       *log.Logger
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	pipeline *processor.Pipeline
	logger   *log.Logger
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		config:   config,
		router:   router,
		pipeline: processor.NewPipeline(processor.WithLogger(logger)),
		logger:   logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/import", s.handleImport)
		v1.POST("/allocate", s.handleAllocate)
		v1.POST("/validate", s.handleValidate)
		v1.POST("/invoice", s.handleInvoice)
		v1.POST("/info", s.handleInfo)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// readBody pulls the raw DI XML out of the request, rejecting empty input
func (s *Server) readBody(c *gin.Context) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return nil, false
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return nil, false
	}
	return body, true
}

func (s *Server) handleImport(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}

	result := s.pipeline.ProcessXMLBytes(c.Request.Context(), body)
	if result.Error != nil {
		s.renderProcessError(c, result.Error)
		return
	}

	c.JSON(http.StatusOK, ImportResponse{
		Declaration: result.Declaration,
		Warnings:    result.Warnings,
	})
}

func (s *Server) handleAllocate(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}

	result := s.pipeline.ProcessXMLBytes(c.Request.Context(), body)
	if result.Error != nil {
		s.renderProcessError(c, result.Error)
		return
	}

	if err := allocation.AllocateAll(result.Declaration); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ImportResponse{
		Declaration: result.Declaration,
		Warnings:    result.Warnings,
	})
}

func (s *Server) handleValidate(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}

	result := s.pipeline.ProcessXMLBytes(c.Request.Context(), body)
	if result.Error != nil {
		c.JSON(http.StatusOK, ValidationResponse{
			Valid:  false,
			Errors: []string{result.Error.Error()},
		})
		return
	}

	resp := ValidationResponse{Valid: true, Warnings: result.Warnings}
	if err := result.Declaration.Validate(); err != nil {
		resp.Valid = false
		resp.Errors = append(resp.Errors, err.Error())
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleInvoice(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}

	partnerRef := c.Query("partner")

	result := s.pipeline.ProcessXMLBytes(c.Request.Context(), body)
	if result.Error != nil {
		s.renderProcessError(c, result.Error)
		return
	}

	dec := result.Declaration
	dec.ExportingPartner = partnerRef
	if err := dec.Confirm(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	draft, err := invoice.BuildDraft(dec)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, InvoiceResponse{
		Invoice:  draft,
		Total:    draft.Total(),
		Warnings: result.Warnings,
	})
}

func (s *Server) handleInfo(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}

	result := s.pipeline.ProcessXMLBytes(c.Request.Context(), body)
	if result.Error != nil {
		s.renderProcessError(c, result.Error)
		return
	}

	dec := result.Declaration
	lines := 0
	for _, add := range dec.Additions {
		lines += len(add.Lines)
	}

	c.JSON(http.StatusOK, InfoResponse{
		DocumentNumber:      dec.DocumentNumber,
		DocumentDate:        dec.DocumentDate,
		TransportMode:       string(dec.TransportMode),
		Intermediation:      string(dec.Intermediation),
		Additions:           len(dec.Additions),
		Lines:               lines,
		AmountCurrency:      dec.AmountCurrency,
		AmountReais:         dec.AmountReais,
		AmountOtherCostsBRL: dec.AmountOtherCostsBRL,
		Size:                len(body),
	})
}

// renderProcessError maps the core error taxonomy onto HTTP statuses
func (s *Server) renderProcessError(c *gin.Context, err error) {
	s.logger.Warn("processing failed", "error", err)

	var malformed *model.MalformedDocumentError
	var multi *model.UnsupportedMultiValueError
	switch {
	case errors.As(err, &malformed), errors.As(err, &multi):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
