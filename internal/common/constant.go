// Package common contains constants and sentinel errors shared by the
// profile client and the reference API.
package common

const (
	// AuthorizationHeader carries "Bearer <token>" on authenticated calls.
	AuthorizationHeader = "Authorization"
	// BearerPrefix precedes the session token in AuthorizationHeader.
	BearerPrefix = "Bearer "
	// RequestIDHeader correlates a client call with the server's request log.
	RequestIDHeader = "X-Request-ID"

	// TokenKey is the client storage key holding the session token.
	TokenKey = "token"

	// LoginPath and ProfilePath are the client routes.
	LoginPath   = "/login"
	ProfilePath = "/profile"
)
