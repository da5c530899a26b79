// File path: internal/api/server.go

// Package api is the thin HTTP surface the chat/upload front end talks to.
// Every handler is a passthrough to the report assembler or the context
// store; no report logic lives here.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/common"
	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/esg"
	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/report"
	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/store"
)

type Server struct {
	router     chi.Router
	store      *store.Store
	uploadRoot string
	opts       report.Options
}

// Config controls where uploads land and how reports are assembled.
type Config struct {
	UploadRoot string
	Layout     report.Layout
	Rank       report.RankRule
}

// DefaultConfig returns the standard configuration used when no overrides
// are provided.
func DefaultConfig() Config {
	return Config{
		UploadRoot: filepath.Join(os.TempDir(), "esgd_uploads"),
	}
}

// Merge overlays non-empty override values onto the base configuration.
func (c Config) Merge(override Config) Config {
	result := c
	if strings.TrimSpace(override.UploadRoot) != "" {
		result.UploadRoot = strings.TrimSpace(override.UploadRoot)
	}
	if len(override.Layout.Sections) > 0 {
		result.Layout = override.Layout
	}
	if override.Rank != "" {
		result.Rank = override.Rank
	}
	return result
}

func NewServer(st *store.Store, cfg *Config) (*Server, error) {
	logger := common.Logger()
	if st == nil {
		return nil, fmt.Errorf("context store required")
	}
	configuration := DefaultConfig()
	if cfg != nil {
		configuration = configuration.Merge(*cfg)
	}
	if err := os.MkdirAll(configuration.UploadRoot, 0o755); err != nil {
		return nil, fmt.Errorf("prepare upload root: %w", err)
	}
	srv := &Server{
		router:     chi.NewRouter(),
		store:      st,
		uploadRoot: configuration.UploadRoot,
		opts:       report.Options{Layout: configuration.Layout, Rank: configuration.Rank},
	}
	srv.routes()
	logger.Info("api: server ready", "upload_root", srv.uploadRoot)
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Post("/v1/data", s.handleSubmitData)
	s.router.Delete("/v1/data", s.handleClearData)
	s.router.Post("/v1/artifacts", s.handleUploadArtifact)
	s.router.Post("/v1/report", s.handleGenerateReport)
	s.router.Get("/v1/context", s.handleContext)
	s.router.Get("/v1/logs", s.handleLogs)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusForAssemblyError distinguishes payload defects (caller's fault) from
// catalog/layout mismatches (server configuration fault).
func statusForAssemblyError(err error) int {
	var verr *esg.ValidationError
	var ierr *report.IndexIntegrityError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &ierr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
