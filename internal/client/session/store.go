// Package session holds the client's authentication state: access and
// refresh tokens plus the active organization, shared by every remote call.
package session

import (
	"sync"
	"time"

	"github.com/dberzins/stockroom/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// Store is the process-wide holder of the current Session.
//
// Reads and writes are safe from any goroutine. Login and logout can race
// with in-flight operations: an operation must capture credentials once at
// call start (via Get) and keep using them, so a logout mid-flight lets the
// operation fail naturally with an auth error instead of being cancelled.
type Store struct {
	mu      sync.RWMutex
	session models.Session
	active  bool
}

// NewStore returns an empty Store with no active session.
func NewStore() *Store {
	return &Store{}
}

// Get returns a snapshot of the current session. The second return value is
// false when no session is active; the snapshot is then zero.
func (s *Store) Get() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, s.active
}

// AccessToken returns the current access token, or "" if logged out.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.AccessToken
}

// Organization returns the active organization id, or "" if logged out.
func (s *Store) Organization() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.OrganizationID
}

// Save replaces the stored session wholesale.
func (s *Store) Save(sess models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = sess
	s.active = true
}

// UpdateTokens swaps in refreshed tokens while keeping organization identity.
func (s *Store) UpdateTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.AccessToken = access
	s.session.RefreshToken = refresh
}

// Clear wipes the session on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = models.Session{}
	s.active = false
}

// TokenExpiry reports the access token's expiry time. The token is decoded
// without signature verification: the client only schedules refreshes with
// it, the server remains the authority on validity. Returns zero time when
// no token is stored or the token carries no exp claim.
func (s *Store) TokenExpiry() time.Time {
	token := s.AccessToken()
	if token == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// TokenExpired reports whether the stored access token has an exp claim in
// the past. A missing token or missing claim reports false; the backend will
// reject those on its own.
func (s *Store) TokenExpired() bool {
	exp := s.TokenExpiry()
	if exp.IsZero() {
		return false
	}
	return time.Now().After(exp)
}
