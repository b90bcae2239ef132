package model

import "time"

// ModuleSession tags session lifecycle entries in the activity log.
// It is not part of the permission schema.
const ModuleSession Module = "session"

// LoginAction distinguishes entries in the login log
type LoginAction string

const (
	LoginActionLogin  LoginAction = "login"
	LoginActionLogout LoginAction = "logout"
)

// LogoutReason records why a session ended
type LogoutReason string

const (
	LogoutManual         LogoutReason = "manual"
	LogoutTimeout        LogoutReason = "timeout"
	LogoutSessionExpired LogoutReason = "session_expired"
)

// LoginLog is an append-only audit record of login and logout events.
// UserID is zero for failed attempts where no account matched.
type LoginLog struct {
	UserID    UserID
	Username  string
	Action    LoginAction
	Success   bool
	Reason    LogoutReason
	IPAddress string
	UserAgent string
	Timestamp time.Time
}

// ActivityLog is an append-only audit record of a state-mutating action
type ActivityLog struct {
	UserID      UserID
	Username    string
	Module      Module
	Action      string
	EntityID    string
	Description string
	Timestamp   time.Time
}
