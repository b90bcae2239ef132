package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/khokhopl/league-console/internal/dependencies/clock"
	"github.com/khokhopl/league-console/internal/model"
	"github.com/khokhopl/league-console/internal/services/audit"
	"github.com/khokhopl/league-console/internal/services/auth"
	"github.com/khokhopl/league-console/internal/services/match"
	"github.com/khokhopl/league-console/internal/services/pool"
	"github.com/khokhopl/league-console/internal/services/team"
	"github.com/khokhopl/league-console/internal/services/user"
	"github.com/khokhopl/league-console/internal/storage"
	"github.com/khokhopl/league-console/internal/storage/memory"
	redisstorage "github.com/khokhopl/league-console/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Audit trail
	Audit *audit.Queue

	// Services
	AuthService  *auth.Service
	TeamService  *team.Service
	PoolService  *pool.Service
	MatchService *match.Service
	UserService  *user.Service
	Sweeper      *auth.Sweeper
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// AdminPassword is the initial password for the seeded main admin
	// account. Only used when the user table is empty at bootstrap.
	AdminPassword string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, clk)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, authCfg auth.Config, logger *slog.Logger) *App {
	auditQueue := audit.NewQueue(store, logger, audit.DefaultQueueSize)

	authService := auth.New(store, clk, auditQueue, logger, authCfg)
	teamService := team.New(store, clk, auditQueue, logger)
	matchService := match.New(store, clk, auditQueue, logger)
	poolService := pool.New(store, matchService, clk, auditQueue, logger)
	userService := user.New(store, clk, auditQueue, logger)
	sweeper := auth.NewSweeper(authService, auth.DefaultSweepInterval)

	return &App{
		Storage:      store,
		Clock:        clk,
		Audit:        auditQueue,
		AuthService:  authService,
		TeamService:  teamService,
		PoolService:  poolService,
		MatchService: matchService,
		UserService:  userService,
		Sweeper:      sweeper,
	}
}

// Bootstrap seeds the main admin account if no users exist yet.
// The seeded account always gets user id 1, which the user service
// protects from role changes, deletion, and deactivation.
func (a *App) Bootstrap(ctx context.Context, adminPassword string) error {
	users, err := a.Storage.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	if adminPassword == "" {
		return errors.New("admin password required to seed the first account")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := a.Clock.Now()
	_, err = a.Storage.CreateUser(ctx, &model.User{
		Username:     "admin",
		PasswordHash: string(hash),
		DisplayName:  "Administrator",
		Role:         model.RoleAdmin,
		Permissions:  model.DefaultPermissions(model.RoleAdmin),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	return err
}

// Close releases application resources, draining the audit queue
func (a *App) Close() {
	a.Sweeper.Stop()
	a.Audit.Close()
}
