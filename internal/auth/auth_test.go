// AngelaMos | 2026
// auth_test.go

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/carterperez-dev/templates/order-api/internal/config"
	"github.com/carterperez-dev/templates/order-api/internal/core"
)

func newJWTManager(t *testing.T, expire time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	priv := filepath.Join(dir, "private.pem")
	pub := filepath.Join(dir, "public.pem")
	require.NoError(t, GenerateKeyPair(priv, pub))

	m, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:    priv,
		PublicKeyPath:     pub,
		AccessTokenExpire: expire,
		Issuer:            "order-api",
		Audience:          "order-api-clients",
	})
	require.NoError(t, err)
	return m
}

type fakeUsers struct {
	mu     sync.Mutex
	byID   map[int64]*UserInfo
	rehash map[int64]string
}

func newFakeUsers(users ...*UserInfo) *fakeUsers {
	f := &fakeUsers{byID: map[int64]*UserInfo{}, rehash: map[int64]string{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %d: %w", id, core.ErrNotFound)
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rehash[id] = hash
	return nil
}

type memoryBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func (b *memoryBlacklist) Revoke(_ context.Context, jti string, exp time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.revoked == nil {
		b.revoked = map[string]time.Time{}
	}
	b.revoked[jti] = exp
	return nil
}

func (b *memoryBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return false, b.err
	}
	_, ok := b.revoked[jti]
	return ok, nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := core.HashPassword(password)
	require.NoError(t, err)
	return h
}

func TestJWTRoundTrip(t *testing.T) {
	m := newJWTManager(t, time.Hour)

	issued, err := m.CreateAccessToken(AccessTokenClaims{UserID: 12, Role: "admin"})
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	claims, err := m.VerifyAccessToken(context.Background(), issued.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(12), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, issued.ID, claims.TokenID)
	assert.WithinDuration(t, issued.ExpiresAt, claims.ExpiresAt, time.Second)
}

func TestJWTRejectsForeignAndExpiredTokens(t *testing.T) {
	m := newJWTManager(t, time.Hour)
	other := newJWTManager(t, time.Hour)

	issued, err := other.CreateAccessToken(AccessTokenClaims{UserID: 1, Role: "regular"})
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(context.Background(), issued.Token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)

	_, err = m.VerifyAccessToken(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)

	expired := newJWTManager(t, -time.Minute)
	issued, err = expired.CreateAccessToken(AccessTokenClaims{UserID: 1, Role: "regular"})
	require.NoError(t, err)

	_, err = expired.VerifyAccessToken(context.Background(), issued.Token)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestJWKSHandler(t *testing.T) {
	m := newJWTManager(t, time.Hour)

	rec := httptest.NewRecorder()
	m.GetJWKSHandler()(rec, httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Keys []map[string]any `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Keys, 1)
	assert.Equal(t, "EC", body.Keys[0]["kty"])
	assert.Equal(t, m.GetKeyID(), body.Keys[0]["kid"])
	assert.NotContains(t, body.Keys[0], "d")
}

func TestLogin(t *testing.T) {
	users := newFakeUsers(&UserInfo{
		ID:           3,
		Email:        "chef@example.com",
		PasswordHash: mustHash(t, "password123"),
		Role:         "regular",
	})
	svc := NewService(newJWTManager(t, 12*time.Hour), users, &memoryBlacklist{})
	ctx := context.Background()

	resp, err := svc.Login(ctx, LoginRequest{Email: "Chef@Example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.InDelta(t, 12*60*60, resp.ExpiresIn, 2)
	assert.Equal(t, int64(3), resp.User.ID)

	claims, err := svc.VerifyAccessToken(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)

	_, err = svc.Login(ctx, LoginRequest{Email: "chef@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUpgradesLegacyHash(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := newFakeUsers(&UserInfo{
		ID:           8,
		Email:        "old@example.com",
		PasswordHash: string(legacy),
		Role:         "admin",
	})
	svc := NewService(newJWTManager(t, time.Hour), users, &memoryBlacklist{})

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "old@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	upgraded, ok := users.rehash[8]
	require.True(t, ok)
	valid, err := core.VerifyPassword("password123", upgraded)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestLogoutRevokesToken(t *testing.T) {
	users := newFakeUsers(&UserInfo{
		ID:           5,
		Email:        "host@example.com",
		PasswordHash: mustHash(t, "password123"),
		Role:         "regular",
	})
	blacklist := &memoryBlacklist{}
	svc := NewService(newJWTManager(t, time.Hour), users, blacklist)
	ctx := context.Background()

	resp, err := svc.Login(ctx, LoginRequest{Email: "host@example.com", Password: "password123"})
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(ctx, resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	_, err = svc.VerifyAccessToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)

	blacklist.err = fmt.Errorf("redis down")
	_, err = svc.VerifyAccessToken(ctx, resp.AccessToken)
	assert.NoError(t, err)
}
