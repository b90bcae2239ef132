package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/khokhopl/league-console/internal/model"
	"github.com/khokhopl/league-console/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeTeamNotFound       = "TEAM_NOT_FOUND"
	CodePoolNotFound       = "POOL_NOT_FOUND"
	CodeMatchNotFound      = "MATCH_NOT_FOUND"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeMainAdminProtected = "MAIN_ADMIN_PROTECTED"
	CodeMatchCompleted     = "MATCH_ALREADY_COMPLETED"
	CodeMatchNotCompleted  = "MATCH_NOT_COMPLETED"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeInvalidWinner      = "INVALID_WINNER"
	CodeSameTeam           = "SAME_TEAM"
	CodeTeamNotInPool      = "TEAM_NOT_IN_POOL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, ve.Error()}}
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrTeamNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTeamNotFound, "Team not found"}}
	case errors.Is(err, model.ErrPoolNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePoolNotFound, "Pool not found"}}
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}
	case errors.Is(err, model.ErrMainAdminProtected):
		return &httpError{http.StatusForbidden, APIError{CodeMainAdminProtected, "The main admin account cannot be modified this way"}}
	case errors.Is(err, model.ErrPermissionDenied):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "You do not have permission to perform this action"}}
	case errors.Is(err, model.ErrMatchAlreadyCompleted):
		return &httpError{http.StatusConflict, APIError{CodeMatchCompleted, "Match is already completed"}}
	case errors.Is(err, model.ErrMatchNotCompleted):
		return &httpError{http.StatusConflict, APIError{CodeMatchNotCompleted, "Match is not completed yet"}}
	case errors.Is(err, model.ErrInvalidTransition):
		return &httpError{http.StatusConflict, APIError{CodeInvalidTransition, "Invalid match status transition"}}
	case errors.Is(err, model.ErrInvalidWinner):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidWinner, "Winner must be one of the match teams"}}
	case errors.Is(err, model.ErrSameTeam):
		return &httpError{http.StatusBadRequest, APIError{CodeSameTeam, "A team cannot play against itself"}}
	case errors.Is(err, model.ErrTeamNotInPool):
		return &httpError{http.StatusBadRequest, APIError{CodeTeamNotInPool, "Both teams must belong to the pool"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
