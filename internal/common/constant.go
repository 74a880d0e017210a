// Package common contains shared constants and sentinel errors used across
// Stockroom components.
package common

const (
	// APIKeyHeaderName is the HTTP header carrying the project API key on
	// every backend request.
	APIKeyHeaderName = "apikey"

	// AuthorizationHeaderName is the HTTP header carrying the bearer access
	// token on authenticated requests.
	AuthorizationHeaderName = "Authorization"
)

// GroupIDLength is the length of client-generated group identifiers.
const GroupIDLength = 16
