package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/khokhopl/league-console/internal/api/handler"
	apimiddleware "github.com/khokhopl/league-console/internal/api/middleware"
	"github.com/khokhopl/league-console/internal/middleware"
	"github.com/khokhopl/league-console/internal/services/auth"
	"github.com/khokhopl/league-console/internal/services/match"
	"github.com/khokhopl/league-console/internal/services/pool"
	"github.com/khokhopl/league-console/internal/services/team"
	"github.com/khokhopl/league-console/internal/services/user"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	AuthService  *auth.Service
	TeamService  *team.Service
	PoolService  *pool.Service
	MatchService *match.Service
	UserService  *user.Service
}

// NewRouter creates a new API router with all routes configured.
// Public pages (schedules, results, team lists) are readable without a
// session; every mutation requires one.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	teamHandler := handler.NewTeamHandler(cfg.TeamService)
	poolHandler := handler.NewPoolHandler(cfg.PoolService)
	matchHandler := handler.NewMatchHandler(cfg.MatchService)
	userHandler := handler.NewUserHandler(cfg.UserService)
	logsHandler := handler.NewLogsHandler(cfg.UserService)

	// Create middleware
	authMiddleware := apimiddleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (login is the only unauthenticated one)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// The idle-state poll bypasses the touching middleware: checking
	// whether the warning is due is not user activity.
	passiveAuth := apimiddleware.PassiveAuth(cfg.AuthService)
	api.Handle("/auth/session", passiveAuth(http.HandlerFunc(authHandler.SessionState))).Methods(http.MethodGet)

	authed := api.PathPrefix("/auth").Subrouter()
	authed.Use(authMiddleware)
	authed.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	authed.HandleFunc("/me", authHandler.Me).Methods(http.MethodGet)
	authed.HandleFunc("/extend", authHandler.Extend).Methods(http.MethodPost)

	// Public read-only routes
	api.HandleFunc("/teams", teamHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/teams/{id}", teamHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/pools", poolHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/pools/{id}", poolHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/matches", matchHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/matches/{id}", matchHandler.Get).Methods(http.MethodGet)

	// Team mutations
	teams := api.PathPrefix("/teams").Subrouter()
	teams.Use(authMiddleware)
	teams.HandleFunc("", teamHandler.Create).Methods(http.MethodPost)
	teams.HandleFunc("/{id}", teamHandler.Update).Methods(http.MethodPut)
	teams.HandleFunc("/{id}", teamHandler.Delete).Methods(http.MethodDelete)

	// Pool mutations
	pools := api.PathPrefix("/pools").Subrouter()
	pools.Use(authMiddleware)
	pools.HandleFunc("", poolHandler.Create).Methods(http.MethodPost)
	pools.HandleFunc("/{id}", poolHandler.Update).Methods(http.MethodPut)
	pools.HandleFunc("/{id}", poolHandler.Delete).Methods(http.MethodDelete)
	pools.HandleFunc("/{id}/matches", poolHandler.FixMatch).Methods(http.MethodPost)
	pools.HandleFunc("/{id}/round-robin", poolHandler.RoundRobin).Methods(http.MethodPost)

	// Match mutations
	matches := api.PathPrefix("/matches").Subrouter()
	matches.Use(authMiddleware)
	matches.HandleFunc("/order", matchHandler.SaveOrder).Methods(http.MethodPut)
	matches.HandleFunc("/{id}/reorder", matchHandler.Reorder).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/start", matchHandler.Start).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/complete", matchHandler.Complete).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/result", matchHandler.EditResult).Methods(http.MethodPatch)
	matches.HandleFunc("/{id}", matchHandler.Delete).Methods(http.MethodDelete)

	// User administration
	users := api.PathPrefix("/users").Subrouter()
	users.Use(authMiddleware)
	users.HandleFunc("", userHandler.List).Methods(http.MethodGet)
	users.HandleFunc("", userHandler.Create).Methods(http.MethodPost)
	users.HandleFunc("/{id}", userHandler.Update).Methods(http.MethodPut)
	users.HandleFunc("/{id}", userHandler.Delete).Methods(http.MethodDelete)
	users.HandleFunc("/{id}/status", userHandler.ToggleStatus).Methods(http.MethodPatch)

	// Audit logs
	logs := api.PathPrefix("/logs").Subrouter()
	logs.Use(authMiddleware)
	logs.HandleFunc("/logins", logsHandler.LoginLogs).Methods(http.MethodGet)
	logs.HandleFunc("/activity", logsHandler.ActivityLogs).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
