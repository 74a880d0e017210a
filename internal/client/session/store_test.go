package session

import (
	"sync"
	"testing"
	"time"

	"github.com/dberzins/stockroom/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func makeToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestStore_SaveGetClear(t *testing.T) {
	s := NewStore()

	_, ok := s.Get()
	require.False(t, ok)
	require.Empty(t, s.AccessToken())
	require.Empty(t, s.Organization())

	s.Save(models.Session{
		AccessToken:    "at",
		RefreshToken:   "rt",
		OrganizationID: "org1",
	})

	sess, ok := s.Get()
	require.True(t, ok)
	require.Equal(t, "at", sess.AccessToken)
	require.Equal(t, "org1", s.Organization())

	s.Clear()
	_, ok = s.Get()
	require.False(t, ok)
	require.Empty(t, s.AccessToken())
}

func TestStore_SnapshotSurvivesLogout(t *testing.T) {
	s := NewStore()
	s.Save(models.Session{AccessToken: "at", OrganizationID: "org1"})

	// An operation captures its credentials at call start.
	snapshot, ok := s.Get()
	require.True(t, ok)

	s.Clear()

	// The captured snapshot is unaffected by the logout.
	require.Equal(t, "at", snapshot.AccessToken)
	require.Equal(t, "org1", snapshot.OrganizationID)
}

func TestStore_UpdateTokensKeepsOrganization(t *testing.T) {
	s := NewStore()
	s.Save(models.Session{AccessToken: "old", RefreshToken: "oldr", OrganizationID: "org1"})

	s.UpdateTokens("new", "newr")

	sess, ok := s.Get()
	require.True(t, ok)
	require.Equal(t, "new", sess.AccessToken)
	require.Equal(t, "newr", sess.RefreshToken)
	require.Equal(t, "org1", sess.OrganizationID)
}

func TestStore_TokenExpiry(t *testing.T) {
	s := NewStore()
	require.True(t, s.TokenExpiry().IsZero())
	require.False(t, s.TokenExpired())

	exp := time.Now().Add(-time.Minute)
	s.Save(models.Session{AccessToken: makeToken(t, exp)})
	require.WithinDuration(t, exp, s.TokenExpiry(), time.Second)
	require.True(t, s.TokenExpired())

	s.Save(models.Session{AccessToken: makeToken(t, time.Now().Add(time.Hour))})
	require.False(t, s.TokenExpired())
}

func TestStore_TokenExpiry_Garbage(t *testing.T) {
	s := NewStore()
	s.Save(models.Session{AccessToken: "not-a-jwt"})
	require.True(t, s.TokenExpiry().IsZero())
	require.False(t, s.TokenExpired())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Save(models.Session{AccessToken: "at", OrganizationID: "org1"})
		}()
		go func() {
			defer wg.Done()
			_ = s.AccessToken()
			_, _ = s.Get()
		}()
	}
	wg.Wait()
}
