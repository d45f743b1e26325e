package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"gapscan/internal/analyzer"
	"gapscan/internal/config"
	"gapscan/internal/crawler"
	"gapscan/internal/models"
	"gapscan/internal/scoring"
	"gapscan/internal/storage"
	"gapscan/pkg/logger"
)

type analyzeReq struct {
	OwnURL          string                  `json:"own_url"`
	CompetitorURLs  []string                `json:"competitor_urls"`
	BusinessContext *models.BusinessContext `json:"business_context,omitempty"`
	Save            bool                    `json:"save,omitempty"`
}

type server struct {
	engine *analyzer.Analyzer
	db     *storage.Database
	log    zerolog.Logger
}

func main() {
	cfgPath := flag.String("config", "", "config file path")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	db, err := storage.NewDatabase(cfg.Storage.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	if err := db.Initialize(); err != nil {
		log.Fatal().Err(err).Msg("initialize database")
	}

	client := crawler.NewHTTPClient(cfg.Crawler.Timeout.Std(), cfg.Crawler.DialTimeout.Std(), cfg.Crawler.MaxBodySize, cfg.Crawler.RequestDelay.Std())
	s := &server{
		engine: analyzer.New(client, scoring.NewScorer(cfg.Scoring.Weights), log),
		db:     db,
		log:    log,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/analyze", s.handleAnalyze)
	r.Get("/reports", s.handleListReports)
	r.Get("/reports/{id}", s.handleGetReport)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
		IdleTimeout:  cfg.Server.IdleTimeout.Std(),
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown.Std())
	defer cancel()
	_ = srv.Shutdown(ctx)
}

func (s *server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OwnURL == "" || len(req.CompetitorURLs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "own_url and competitor_urls are required"})
		return
	}

	result, err := s.engine.Analyze(r.Context(), req.OwnURL, req.CompetitorURLs, req.BusinessContext)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	if req.Save {
		id, err := s.db.SaveResult(result)
		if err != nil {
			s.log.Error().Err(err).Msg("save report")
		} else {
			w.Header().Set("X-Report-ID", id)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *server) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	metas, err := s.db.ListReports(limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if metas == nil {
		metas = []storage.ReportMeta{}
	}
	writeJSON(w, http.StatusOK, metas)
}

func (s *server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result, err := s.db.GetResult(id)
	if errors.Is(err, sql.ErrNoRows) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "report not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}
