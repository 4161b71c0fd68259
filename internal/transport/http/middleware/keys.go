// Package middleware holds the gin middleware shared by both servers.
package middleware

// gin context keys
const (
	KeyRequestID = "rid"
	KeyClaims    = "claims"
	KeyUserID    = "userId"
	KeyRole      = "role"

	HeaderRequestID = "X-Request-ID"
)
