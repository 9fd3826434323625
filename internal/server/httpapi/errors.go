package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophprofile/internal/common"
	"github.com/gin-gonic/gin"
)

const (
	CodeUserUpdated    = "USER-UPDATED"
	CodeUserLoggedIn   = "USER-LOGGED-IN"
	CodeUserFound      = "USER-FOUND"
	CodeUserRegistered = "USER-REGISTERED"

	CodeInvalidCredentials = "INVALID-CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeEmailTaken         = "EMAIL-TAKEN"
	CodeUserNotFound       = "USER-NOT-FOUND"
	CodeInvalidInput       = "INVALID-INPUT"
	CodeNotFound           = "NOT-FOUND"
	CodeServerError        = "SERVER-ERROR"
)

var errorStatusMap = map[string]int{
	CodeInvalidCredentials: http.StatusUnauthorized,
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeEmailTaken:         http.StatusConflict,
	CodeUserNotFound:       http.StatusNotFound,
	CodeInvalidInput:       http.StatusBadRequest,
	CodeNotFound:           http.StatusNotFound,
	CodeServerError:        http.StatusInternalServerError,
}

// classify turns a service error into a response code and a user-facing
// message. Unrecognised errors become SERVER-ERROR.
func classify(err error) (string, string) {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		msg := strings.TrimPrefix(err.Error(), common.ErrInvalidInput.Error()+": ")
		return CodeInvalidInput, capitalize(msg) + "."
	case errors.Is(err, common.ErrEmailTaken):
		return CodeEmailTaken, "Email is already registered."
	case errors.Is(err, common.ErrorNotFound):
		return CodeUserNotFound, "User not found."
	case errors.Is(err, common.ErrorUnauthorized):
		return CodeInvalidCredentials, "Invalid email or password."
	default:
		return CodeServerError, "Something went wrong on the server."
	}
}

func tokenErrorMessage(err error) string {
	if errors.Is(err, common.ErrTokenExpired) {
		return "Session expired, please log in again."
	}
	return "Invalid session token."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (s *Server) writeError(c *gin.Context, op string, err error) {
	code, msg := classify(err)
	status, ok := errorStatusMap[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), op+" failed", "error", err, "request_id", c.GetString(requestIDKey))
	}
	c.JSON(status, response{Code: code, Message: msg})
}
