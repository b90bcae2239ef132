package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/khokhopl/league-console/internal/dependencies/clock"
	"github.com/khokhopl/league-console/internal/model"
	"github.com/khokhopl/league-console/internal/services/audit"
	"github.com/khokhopl/league-console/internal/storage"
)

// Service manages console user accounts
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	sink    audit.Sink
	logger  *slog.Logger
}

// New creates a new user service
func New(store storage.Storage, clk clock.Clock, sink audit.Sink, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		sink:    sink,
		logger:  logger,
	}
}

// List returns all accounts, newest first
func (s *Service) List(ctx context.Context, actor *model.Session) ([]*model.User, error) {
	if !actor.HasPermission(model.ModuleUsers, model.ActionView) {
		return nil, model.ErrPermissionDenied
	}
	return s.storage.ListUsers(ctx)
}

// CreateParams carries new-account fields. Permissions may be nil, in
// which case the role's default permission set applies.
type CreateParams struct {
	Username    string
	Password    string
	DisplayName string
	Role        model.Role
	Permissions model.PermissionSet
}

// Create adds an account. New accounts start active.
func (s *Service) Create(ctx context.Context, actor *model.Session, params CreateParams) (*model.User, error) {
	if !actor.HasPermission(model.ModuleUsers, model.ActionAdd) {
		return nil, model.ErrPermissionDenied
	}

	if params.Username == "" {
		return nil, model.NewValidationError("username", "username is required")
	}
	if params.Password == "" {
		return nil, model.NewValidationError("password", "password is required")
	}
	if !params.Role.Valid() {
		return nil, model.NewValidationError("role", "role must be admin, editor, or viewer")
	}

	if _, err := s.storage.GetUserByUsername(ctx, params.Username); err == nil {
		return nil, model.ErrUsernameExists
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	displayName := params.DisplayName
	if displayName == "" {
		displayName = params.Username
	}
	permissions := params.Permissions
	if permissions == nil {
		permissions = model.DefaultPermissions(params.Role)
	}

	now := s.clock.Now()
	u := &model.User{
		Username:     params.Username,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Role:         params.Role,
		Permissions:  permissions,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.storage.CreateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	s.sink.Activity(model.ActivityLog{
		UserID:      actor.UserID,
		Username:    actor.Username,
		Module:      model.ModuleUsers,
		Action:      "create",
		EntityID:    strconv.FormatInt(int64(created.ID), 10),
		Description: fmt.Sprintf("Created user %s (%s)", created.Username, created.Role),
		Timestamp:   now,
	})
	return created, nil
}

// UpdateParams carries account edits. Nil fields are left unchanged.
type UpdateParams struct {
	DisplayName *string
	Role        *model.Role
	Permissions model.PermissionSet
	Password    *string
}

// Update edits an account. The main admin's role cannot be changed away
// from admin.
func (s *Service) Update(ctx context.Context, actor *model.Session, id model.UserID, params UpdateParams) (*model.User, error) {
	if !actor.HasPermission(model.ModuleUsers, model.ActionEdit) {
		return nil, model.ErrPermissionDenied
	}

	u, err := s.storage.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Role != nil {
		if !params.Role.Valid() {
			return nil, model.NewValidationError("role", "role must be admin, editor, or viewer")
		}
		if u.IsMainAdmin() && *params.Role != model.RoleAdmin {
			return nil, model.ErrMainAdminProtected
		}
		u.Role = *params.Role
	}
	if params.DisplayName != nil {
		u.DisplayName = *params.DisplayName
	}
	if params.Permissions != nil {
		u.Permissions = params.Permissions
	}
	if params.Password != nil {
		if *params.Password == "" {
			return nil, model.NewValidationError("password", "password cannot be empty")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*params.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	u.UpdatedAt = s.clock.Now()

	if err := s.storage.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	s.sink.Activity(model.ActivityLog{
		UserID:      actor.UserID,
		Username:    actor.Username,
		Module:      model.ModuleUsers,
		Action:      "update",
		EntityID:    strconv.FormatInt(int64(id), 10),
		Description: fmt.Sprintf("Updated user %s", u.Username),
		Timestamp:   s.clock.Now(),
	})
	return u, nil
}

// Delete removes an account. The main admin cannot be deleted.
func (s *Service) Delete(ctx context.Context, actor *model.Session, id model.UserID) error {
	if !actor.HasPermission(model.ModuleUsers, model.ActionDelete) {
		return model.ErrPermissionDenied
	}
	if id == model.MainAdminID {
		return model.ErrMainAdminProtected
	}

	u, err := s.storage.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.sink.Activity(model.ActivityLog{
		UserID:      actor.UserID,
		Username:    actor.Username,
		Module:      model.ModuleUsers,
		Action:      "delete",
		EntityID:    strconv.FormatInt(int64(id), 10),
		Description: fmt.Sprintf("Deleted user %s", u.Username),
		Timestamp:   s.clock.Now(),
	})
	return nil
}

// ToggleStatus enables or disables an account. The main admin cannot be
// disabled; re-enabling the main admin is a safe no-op.
func (s *Service) ToggleStatus(ctx context.Context, actor *model.Session, id model.UserID, active bool) (*model.User, error) {
	if !actor.HasPermission(model.ModuleUsers, model.ActionToggleStatus) {
		return nil, model.ErrPermissionDenied
	}
	if id == model.MainAdminID && !active {
		return nil, model.ErrMainAdminProtected
	}

	u, err := s.storage.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	u.IsActive = active
	u.UpdatedAt = s.clock.Now()
	if err := s.storage.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	state := "disabled"
	if active {
		state = "enabled"
	}
	s.sink.Activity(model.ActivityLog{
		UserID:      actor.UserID,
		Username:    actor.Username,
		Module:      model.ModuleUsers,
		Action:      "toggleStatus",
		EntityID:    strconv.FormatInt(int64(id), 10),
		Description: fmt.Sprintf("User %s %s", u.Username, state),
		Timestamp:   s.clock.Now(),
	})
	return u, nil
}

// LoginLogs returns recent login log entries, newest first
func (s *Service) LoginLogs(ctx context.Context, actor *model.Session, limit int) ([]*model.LoginLog, error) {
	if !actor.HasPermission(model.ModuleUsers, model.ActionViewLogs) {
		return nil, model.ErrPermissionDenied
	}
	if limit <= 0 {
		limit = 100
	}
	return s.storage.ListLoginLogs(ctx, limit)
}

// ActivityLogs returns recent activity log entries, newest first
func (s *Service) ActivityLogs(ctx context.Context, actor *model.Session, limit int) ([]*model.ActivityLog, error) {
	if !actor.HasPermission(model.ModuleUsers, model.ActionViewActivity) {
		return nil, model.ErrPermissionDenied
	}
	if limit <= 0 {
		limit = 100
	}
	return s.storage.ListActivityLogs(ctx, limit)
}
