package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathan-the-coder/survey-profiling-tool-backend/models"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/store"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/utils"
)

func newAuthService(t *testing.T) (InterfaceAuthService, *store.GormStore) {
	t.Helper()
	st := newTestStore(t)
	cfg := testConfig()
	return NewAuthService(st, cfg, NewJWTService(cfg), NewRedisService(cfg, nil)), st
}

func createAccount(t *testing.T, st *store.GormStore, username, password string) {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	_, err = st.CreateUser(context.Background(), &models.User{Username: username, Password: hash})
	require.NoError(t, err)
}

func TestLoginSuccess(t *testing.T) {
	svc, st := newAuthService(t)
	createAccount(t, st, "San Jacinto", "secret123")

	user, role, token, err := svc.Login(context.Background(), "San Jacinto", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "San Jacinto", user.Username)
	assert.Equal(t, store.RoleParish, role)
	assert.NotEmpty(t, token)

	// the token carries the derived identity
	cfg := testConfig()
	claims, err := NewJWTService(cfg).ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "San Jacinto", claims.Username)
	assert.Equal(t, store.RoleParish, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, st := newAuthService(t)
	createAccount(t, st, "San Jacinto", "secret123")

	_, _, _, err := svc.Login(context.Background(), "San Jacinto", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newAuthService(t)

	// unknown accounts and wrong passwords look identical
	_, _, _, err := svc.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginLegacyPlaintextPassword(t *testing.T) {
	svc, st := newAuthService(t)
	_, err := st.CreateUser(context.Background(), &models.User{Username: "Old Parish", Password: "plaintext"})
	require.NoError(t, err)

	_, role, _, err := svc.Login(context.Background(), "Old Parish", "plaintext")
	require.NoError(t, err)
	assert.Equal(t, store.RoleParish, role)
}

func TestDeriveRole(t *testing.T) {
	svc, _ := newAuthService(t)

	assert.Equal(t, store.RoleArchdiocese, svc.DeriveRole("Archdiocese of Tuguegarao"))
	assert.Equal(t, store.RoleAdmin, svc.DeriveRole("SJCB_Admin"))
	assert.Equal(t, store.RoleAdmin, svc.DeriveRole("parish_admin_account"))
	assert.Equal(t, store.RoleParish, svc.DeriveRole("San Jacinto"))
}

func TestListParishes(t *testing.T) {
	svc, st := newAuthService(t)
	createAccount(t, st, "San Jacinto", "a")
	createAccount(t, st, "Our Lady of Piat", "b")

	parishes, err := svc.ListParishes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Our Lady of Piat", "San Jacinto"}, parishes)
}

// fakeCache is an in-memory InterfaceRedisService for observing
// roster cache behavior.
type fakeCache struct {
	parishes      []string
	invalidations int
}

func (f *fakeCache) GetCachedParishes(ctx context.Context) ([]string, bool) {
	if f.parishes == nil {
		return nil, false
	}
	return f.parishes, true
}

func (f *fakeCache) CacheParishes(ctx context.Context, parishes []string) {
	f.parishes = parishes
}

func (f *fakeCache) InvalidateParishes(ctx context.Context) {
	f.parishes = nil
	f.invalidations++
}

func TestCreateParishAccountInvalidatesRoster(t *testing.T) {
	st := newTestStore(t)
	cfg := testConfig()
	cache := &fakeCache{}
	svc := NewAuthService(st, cfg, NewJWTService(cfg), cache)
	ctx := context.Background()

	user, err := svc.CreateParishAccount(ctx, "San Jacinto", "secret123")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.Equal(t, 1, cache.invalidations)

	// the password is stored hashed, and the account can log in
	_, role, _, err := svc.Login(ctx, "San Jacinto", "secret123")
	require.NoError(t, err)
	assert.Equal(t, store.RoleParish, role)

	// warm the cache, then register another parish
	parishes, err := svc.ListParishes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"San Jacinto"}, parishes)

	_, err = svc.CreateParishAccount(ctx, "Our Lady of Piat", "secret456")
	require.NoError(t, err)
	assert.Equal(t, 2, cache.invalidations)

	// the stale roster is gone; the next read sees the new parish
	parishes, err = svc.ListParishes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Our Lady of Piat", "San Jacinto"}, parishes)
}
