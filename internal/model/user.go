package model

import "time"

// UserID uniquely identifies a console user
type UserID int64

// MainAdminID is the immutable primary administrator account.
// It cannot be deleted, disabled, or demoted from the admin role.
const MainAdminID UserID = 1

// User is a console account with granular permissions
type User struct {
	ID           UserID
	Username     string // login username (unique)
	PasswordHash string // bcrypt hash
	DisplayName  string
	Role         Role
	Permissions  PermissionSet
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsMainAdmin reports whether this is the protected primary admin account
func (u *User) IsMainAdmin() bool {
	return u.ID == MainAdminID
}

// Session is an authenticated console session.
// LastActivity is persisted so idle state survives a client reload.
type Session struct {
	Token        string
	UserID       UserID
	Username     string
	DisplayName  string
	Role         Role
	Permissions  PermissionSet
	LoginAt      time.Time
	ExpiresAt    time.Time
	LastActivity time.Time
}

// Expired reports whether the session's hard expiry has passed
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// HasPermission reports whether the session may perform the given action.
// Admins are granted everything regardless of the stored permission set.
func (s *Session) HasPermission(module Module, action Action) bool {
	if s == nil {
		return false
	}
	if s.Role == RoleAdmin {
		return true
	}
	return s.Permissions.Allows(module, action)
}
