package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/khokhopl/league-console/internal/dependencies/clock"
	"github.com/khokhopl/league-console/internal/model"
	"github.com/khokhopl/league-console/internal/services/audit"
	"github.com/khokhopl/league-console/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// Config holds configuration for the auth service
type Config struct {
	// SessionDuration is the hard session lifetime
	SessionDuration time.Duration
	// IdleTimeout is the inactivity window before a forced logout
	IdleTimeout time.Duration
	// WarningPeriod is how long before the idle cutoff the countdown
	// warning becomes active
	WarningPeriod time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
		IdleTimeout:     10 * time.Minute,
		WarningPeriod:   60 * time.Second,
	}
}

// LoginMeta carries request metadata recorded in the login log
type LoginMeta struct {
	IPAddress string
	UserAgent string
}

// Service handles authentication, sessions, and permission checks
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	sink    audit.Sink
	logger  *slog.Logger
	cfg     Config
}

// New creates a new auth service
func New(store storage.Storage, clk clock.Clock, sink audit.Sink, logger *slog.Logger, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = DefaultConfig().IdleTimeout
	}
	if cfg.WarningPeriod == 0 {
		cfg.WarningPeriod = DefaultConfig().WarningPeriod
	}
	return &Service{
		storage: store,
		clock:   clk,
		sink:    sink,
		logger:  logger,
		cfg:     cfg,
	}
}

// Login authenticates an active user and creates a session. The error
// never reveals whether the username or the password was wrong; every
// attempt is recorded in the login log either way.
func (s *Service) Login(ctx context.Context, username, password string, meta LoginMeta) (*model.Session, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			s.logAttempt(0, username, false, meta)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		s.logAttempt(user.ID, username, false, meta)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logAttempt(user.ID, username, false, meta)
		return nil, ErrInvalidCredentials
	}

	now := s.clock.Now()
	permissions := user.Permissions
	if permissions == nil {
		permissions = model.DefaultPermissions(user.Role)
	}

	session := &model.Session{
		Token:        generateToken(),
		UserID:       user.ID,
		Username:     user.Username,
		DisplayName:  user.DisplayName,
		Role:         user.Role,
		Permissions:  permissions,
		LoginAt:      now,
		ExpiresAt:    now.Add(s.cfg.SessionDuration),
		LastActivity: now,
	}

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	s.logAttempt(user.ID, username, true, meta)
	return session, nil
}

// ValidateSession checks a token and returns the session. Expired
// sessions are deleted as a side effect; sessions idle past the
// inactivity window are force-logged-out with reason timeout. The idle
// check runs off the persisted last-activity marker, so an idle session
// is caught even if the client went away and came back.
func (s *Service) ValidateSession(ctx context.Context, token string) (*model.Session, error) {
	session, err := s.storage.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	now := s.clock.Now()
	if session.Expired(now) {
		s.endSession(ctx, session, model.LogoutSessionExpired)
		return nil, ErrInvalidSession
	}
	if now.Sub(session.LastActivity) >= s.cfg.IdleTimeout {
		s.endSession(ctx, session, model.LogoutTimeout)
		return nil, ErrInvalidSession
	}

	return session, nil
}

// Touch records user activity, resetting the inactivity window
func (s *Service) Touch(ctx context.Context, token string) (*model.Session, error) {
	session, err := s.ValidateSession(ctx, token)
	if err != nil {
		return nil, err
	}

	session.LastActivity = s.clock.Now()
	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Extend is the explicit "stay logged in" action dismissing the
// inactivity warning. Beyond touching the session it records the
// extension in the activity log.
func (s *Service) Extend(ctx context.Context, token string) (*model.Session, error) {
	session, err := s.ValidateSession(ctx, token)
	if err != nil {
		return nil, err
	}

	wasWarning, _ := s.idleStateAt(session, s.clock.Now())
	session2, err := s.Touch(ctx, token)
	if err != nil {
		return nil, err
	}

	if wasWarning == IdleWarning {
		s.sink.Activity(model.ActivityLog{
			UserID:      session.UserID,
			Username:    session.Username,
			Module:      model.ModuleSession,
			Action:      "extend",
			Description: "Extended session after inactivity warning",
			Timestamp:   s.clock.Now(),
		})
	}
	return session2, nil
}

// IdleStatus describes where a session sits in the inactivity protocol
type IdleStatus string

const (
	// IdleActive means the session has seen recent activity
	IdleActive IdleStatus = "active"
	// IdleWarning means the pre-logout countdown is running
	IdleWarning IdleStatus = "warning"
)

// IdleState reports the session's inactivity status and, during the
// warning window, the time remaining before forced logout.
func (s *Service) IdleState(ctx context.Context, token string) (IdleStatus, time.Duration, error) {
	session, err := s.ValidateSession(ctx, token)
	if err != nil {
		return "", 0, err
	}
	status, remaining := s.idleStateAt(session, s.clock.Now())
	return status, remaining, nil
}

func (s *Service) idleStateAt(session *model.Session, now time.Time) (IdleStatus, time.Duration) {
	idleFor := now.Sub(session.LastActivity)
	if idleFor >= s.cfg.IdleTimeout-s.cfg.WarningPeriod {
		return IdleWarning, s.cfg.IdleTimeout - idleFor
	}
	return IdleActive, 0
}

// Logout invalidates the session and records a logout event tagged with
// the reason. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string, reason model.LogoutReason) error {
	session, err := s.storage.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	s.endSession(ctx, session, reason)
	return nil
}

// HasPermission reports whether the session may perform the action.
// Admins pass every check; for other roles missing grants read as false.
// Never panics, including on a nil session.
func (s *Service) HasPermission(session *model.Session, module model.Module, action model.Action) bool {
	return session.HasPermission(module, action)
}

// Sweep makes one pass over stored sessions, force-logging-out any that
// are expired or idle past the cutoff.
func (s *Service) Sweep(ctx context.Context) {
	sessions, err := s.storage.ListSessions(ctx)
	if err != nil {
		s.logger.Warn("session sweep failed", slog.String("error", err.Error()))
		return
	}

	now := s.clock.Now()
	for _, session := range sessions {
		switch {
		case session.Expired(now):
			s.endSession(ctx, session, model.LogoutSessionExpired)
		case now.Sub(session.LastActivity) >= s.cfg.IdleTimeout:
			s.endSession(ctx, session, model.LogoutTimeout)
		}
	}
}

// endSession deletes the session record (which is also the last-activity
// marker) and records the logout. The audit write is best-effort.
func (s *Service) endSession(ctx context.Context, session *model.Session, reason model.LogoutReason) {
	if err := s.storage.DeleteSession(ctx, session.Token); err != nil {
		s.logger.Warn("failed to delete session",
			slog.String("token", session.Token),
			slog.String("error", err.Error()))
	}

	s.sink.LoginEvent(model.LoginLog{
		UserID:    session.UserID,
		Username:  session.Username,
		Action:    model.LoginActionLogout,
		Success:   true,
		Reason:    reason,
		Timestamp: s.clock.Now(),
	})

	s.logger.Info("session ended",
		slog.String("username", session.Username),
		slog.String("reason", string(reason)))
}

func (s *Service) logAttempt(userID model.UserID, username string, success bool, meta LoginMeta) {
	s.sink.LoginEvent(model.LoginLog{
		UserID:    userID,
		Username:  username,
		Action:    model.LoginActionLogin,
		Success:   success,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Timestamp: s.clock.Now(),
	})
}

// generateToken generates a random session token
func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}
