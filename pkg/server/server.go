package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/levenlabs/go-lflag"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/solaradvisor/solaradvisor/pkg/common"
	"github.com/solaradvisor/solaradvisor/pkg/log"
	"github.com/solaradvisor/solaradvisor/pkg/recommend"
	"github.com/solaradvisor/solaradvisor/pkg/storage"
	"github.com/solaradvisor/solaradvisor/pkg/types"
)

// tokenVerifier is a function that validates an OIDC ID Token.
type tokenVerifier func(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)

// Server handles the HTTP API. It runs analyses through the recommendation
// engine and serves the equipment catalog from storage.
type Server struct {
	engine  *recommend.Engine
	storage storage.Database

	listenAddr string
	httpServer *http.Server

	adminEmails          []string
	oidcVerifier         tokenVerifier
	bypassAuth           bool
	defaultBatteryBudget float64
	serverName           string
}

// Configured initializes the Server with dependencies.
// It uses lflag to register command-line flags for configuration.
func Configured(s storage.Database) *Server {
	srv := &Server{
		engine:               recommend.NewEngine(),
		storage:              s,
		serverName:           common.ServerName(),
		defaultBatteryBudget: types.DefaultBatteryBudget,
	}
	revision := os.Getenv("K_REVISION")
	if revision != "" {
		srv.serverName = revision
	}

	// get the port from PORT when running in cloud run
	port := os.Getenv("PORT")
	if port == "" {
		// otherwise default to 8080
		port = "8080"
	}

	listenAddr := lflag.String("http-listen", ":"+port, "HTTP server listen address")
	adminEmails := lflag.String("admin-emails", "", "comma-delimited list of email addresses allowed to edit the equipment catalog")
	oidcIssuer := lflag.String("oidc-issuer", "https://accounts.google.com", "OIDC issuer used to verify admin id tokens")
	oidcAudience := lflag.String("oidc-audience", "", "client ID to validate admin id tokens against")
	bypassAuth := lflag.Bool("bypass-auth", false, "Allow catalog edits without authentication (local development only)")
	batteryBudget := lflag.String("default-battery-budget", strconv.FormatFloat(types.DefaultBatteryBudget, 'f', -1, 64), "Battery budget used when a request doesn't specify one")

	lflag.Do(func() {
		srv.listenAddr = *listenAddr
		if *adminEmails != "" {
			srv.adminEmails = strings.Split(*adminEmails, ",")
			for i, email := range srv.adminEmails {
				srv.adminEmails[i] = strings.TrimSpace(email)
			}
		}
		if *oidcAudience != "" {
			ctx := oidc.ClientContext(context.Background(), common.HTTPClient(10*time.Second))
			provider, err := oidc.NewProvider(ctx, *oidcIssuer)
			if err != nil {
				log.Ctx(ctx).Error("failed to initialize OIDC provider", slog.String("issuer", *oidcIssuer), slog.Any("error", err))
				os.Exit(1)
			}
			srv.oidcVerifier = provider.Verifier(&oidc.Config{ClientID: *oidcAudience}).Verify
		}
		srv.bypassAuth = *bypassAuth

		budget, err := strconv.ParseFloat(*batteryBudget, 64)
		if err != nil || budget < 0 || math.IsInf(budget, 0) || math.IsNaN(budget) {
			log.Ctx(context.Background()).Error("default-battery-budget must be a non-negative number", slog.String("value", *batteryBudget))
			os.Exit(1)
		}
		srv.defaultBatteryBudget = budget
	})

	return srv
}

func (s *Server) setupHandler() http.Handler {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("POST /api/analysis/recommend-system", s.handleRecommendSystem)
	apiMux.HandleFunc("GET /api/analysis/consumption-patterns", s.handleConsumptionPatterns)
	apiMux.HandleFunc("POST /api/analysis/size-system", s.handleSizeSystem)

	panels := s.panelCatalog()
	apiMux.HandleFunc("GET /api/panels", panels.handleList)
	apiMux.HandleFunc("GET /api/panels/{id}", panels.handleGet)
	apiMux.HandleFunc("POST /api/panels", s.requireAdmin(panels.handleCreate))
	apiMux.HandleFunc("PUT /api/panels/{id}", s.requireAdmin(panels.handleUpdate))
	apiMux.HandleFunc("DELETE /api/panels/{id}", s.requireAdmin(panels.handleDelete))

	inverters := s.inverterCatalog()
	apiMux.HandleFunc("GET /api/inverters", inverters.handleList)
	apiMux.HandleFunc("GET /api/inverters/{id}", inverters.handleGet)
	apiMux.HandleFunc("POST /api/inverters", s.requireAdmin(inverters.handleCreate))
	apiMux.HandleFunc("PUT /api/inverters/{id}", s.requireAdmin(inverters.handleUpdate))
	apiMux.HandleFunc("DELETE /api/inverters/{id}", s.requireAdmin(inverters.handleDelete))

	mux := http.NewServeMux()
	mux.Handle("/api/", requestLogMiddleware(gziphandler.GzipHandler(apiMux)))
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())
	return metricsMiddleware(s.revisionMiddleware(securityHeadersMiddleware(mux)))
}

// Run starts the HTTP server and blocks until the context is canceled or an error occurs.
// It also handles graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.listenAddr,
		Handler:      s.setupHandler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	// use a channel to capturing server errors
	errChan := make(chan error, 1)
	go func() {
		defer close(errChan)
		log.Ctx(ctx).InfoContext(ctx, "starting server", slog.String("addr", s.listenAddr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		// Context canceled, shut down gracefully
		log.Ctx(ctx).InfoContext(ctx, "shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}

type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", slog.Any("error", err))
		panic(http.ErrAbortHandler)
	}
}

func writeJSONData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: data})
}

func writeJSONError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, apiResponse{Error: msg})
}

// writeErrorKind maps an error from the engine or storage onto a status code.
// Validation and domain errors are the caller's fault and their message is
// returned. Anything else is logged and reported generically.
func writeErrorKind(ctx context.Context, w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, types.ErrValidation):
		log.Ctx(ctx).InfoContext(ctx, "rejected request", slog.String("action", action), slog.Any("error", err))
		writeJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, types.ErrDomain):
		log.Ctx(ctx).InfoContext(ctx, "request undefined for model", slog.String("action", action), slog.Any("error", err))
		writeJSONError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, types.ErrNotFound):
		writeJSONError(w, err.Error(), http.StatusNotFound)
	default:
		log.Ctx(ctx).ErrorContext(ctx, "failed to "+action, slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		panic(http.ErrAbortHandler)
	}
}
