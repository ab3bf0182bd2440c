package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/yurifrl/invoicer/pkg/config"
	"github.com/yurifrl/invoicer/pkg/models"
	"github.com/yurifrl/invoicer/pkg/parser"
	"github.com/yurifrl/invoicer/pkg/upload"
	"github.com/yurifrl/invoicer/pkg/validation"
)

const (
	fileField  = "file"
	monthField = "invoicingMonth"

	errMissingFile  = "Missing a file to process"
	errMissingMonth = "Missing an invoicingMonth to process the file"
	errServer       = "Some error occurred on the server"
)

// Server exposes the invoice batch validation endpoint.
type Server struct {
	config  *config.Config
	logger  *log.Logger
	mux     *http.ServeMux
	parser  *parser.Parser
	uploads *upload.Store
}

// New creates a new HTTP server
func New(cfg *config.Config, logger *log.Logger) *Server {
	s := &Server{
		config:  cfg,
		logger:  logger,
		mux:     http.NewServeMux(),
		parser:  parser.New(logger),
		uploads: upload.NewStore(cfg.UploadDir, logger),
	}
	s.setupRoutes()
	return s
}

// Handler returns the routed handler wrapped in the CORS middleware.
func (s *Server) Handler() http.Handler {
	return s.withCORS(s.mux)
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully
// and waits for pending upload removals.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		s.uploads.Wait()
		return err
	}
}

// Wait blocks until background upload removals have finished.
func (s *Server) Wait() {
	s.uploads.Wait()
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/upload", s.withLogging(s.handleUpload))
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	file, header, err := r.FormFile(fileField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, r, http.StatusRequestEntityTooLarge, "file too large", err)
			return
		}
		s.respondError(w, r, http.StatusBadRequest, errMissingFile, err)
		return
	}
	defer file.Close()

	month := r.FormValue(monthField)
	if month == "" {
		s.respondError(w, r, http.StatusBadRequest, errMissingMonth, nil)
		return
	}

	path, err := s.uploads.Save(header.Filename, file)
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, errServer, err)
		return
	}
	defer s.uploads.Discard(path)

	grid, err := s.parser.ProcessFile(path)
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, errServer, err)
		return
	}

	report := validation.Validate(grid, month)
	s.logReport(r, header.Filename, report)

	if err := s.writeJSON(w, http.StatusOK, report); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) logReport(r *http.Request, filename string, report *models.Report) {
	if !report.OK() {
		s.logger.Info("batch rejected", "file", filename, "reason", report.Error, "request_id", requestID(r))
		return
	}
	invalid := 0
	for _, inv := range report.Invoices {
		if len(inv.ValidationErrors) > 0 {
			invalid++
		}
	}
	s.logger.Info("batch validated",
		"file", filename,
		"month", report.InvoicingMonth,
		"invoices", len(report.Invoices),
		"with_errors", invalid,
		"request_id", requestID(r))
}

// --- helpers ---

// writeJSON encodes v as JSON with the given status and writes headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// respondError logs the error and returns a minimal JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		s.logger.Warn("request error", "status", status, "msg", message, "err", err, "method", r.Method, "path", r.URL.Path, "request_id", requestID(r))
	} else {
		s.logger.Warn("request error", "status", status, "msg", message, "method", r.Method, "path", r.URL.Path, "request_id", requestID(r))
	}
	_ = s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}

type ctxKey struct{}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}

// withLogging wraps a handler to tag the request with an id, log it and
// recover panics.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, id))
		w.Header().Set("X-Request-Id", id)

		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr, "request_id", id)
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path, "request_id", id)
				s.respondError(w, r, http.StatusInternalServerError, errServer, fmt.Errorf("panic: %v", rec))
			}
		}()
		next(w, r)
	}
}

// withCORS allows cross-origin calls from the configured origin.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.config.CORSOrigin)
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET,HEAD,PUT,PATCH,POST,DELETE")
			if h := r.Header.Get("Access-Control-Request-Headers"); h != "" {
				w.Header().Set("Access-Control-Allow-Headers", h)
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
