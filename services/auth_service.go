package services

import (
	"context"
	"strings"

	"github.com/nathan-the-coder/survey-profiling-tool-backend/config"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/models"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/store"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/utils"
)

// InterfaceAuthService handles parish account login and the parish
// roster used by connection checks.
type InterfaceAuthService interface {
	Login(ctx context.Context, username, password string) (*models.User, string, string, error)
	DeriveRole(username string) string
	ListParishes(ctx context.Context) ([]string, error)
	CreateParishAccount(ctx context.Context, username, password string) (*models.User, error)
}

// AuthService provides login and role derivation
type AuthService struct {
	Store  store.Store
	Config *config.Config
	jwt    InterfaceJWTService
	cache  InterfaceRedisService
}

// NewAuthService creates a new auth service
func NewAuthService(st store.Store, cfg *config.Config, jwtService InterfaceJWTService, cache InterfaceRedisService) InterfaceAuthService {
	return &AuthService{
		Store:  st,
		Config: cfg,
		jwt:    jwtService,
		cache:  cache,
	}
}

// 1. Login verifies credentials and returns the user, its derived role
// and a signed token. Unknown users and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, string, error) {
	user, err := s.Store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, "", "", err
	}
	if user == nil || !utils.CheckPasswordHash(password, user.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	role := s.DeriveRole(user.Username)
	token, err := s.jwt.GenerateToken(user.Username, role)
	if err != nil {
		return nil, "", "", err
	}
	return user, role, token, nil
}

// 2. DeriveRole maps an account name to its tenant role. The
// archdiocese account is the super-tenant; admin accounts are flagged
// by name; everything else is a parish.
func (s *AuthService) DeriveRole(username string) string {
	if username == s.Config.SuperTenantName {
		return store.RoleArchdiocese
	}
	if username == "SJCB_Admin" || strings.Contains(strings.ToLower(username), "admin") {
		return store.RoleAdmin
	}
	return store.RoleParish
}

// 3. ListParishes returns the account roster, Redis-cached.
func (s *AuthService) ListParishes(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		if parishes, ok := s.cache.GetCachedParishes(ctx); ok {
			return parishes, nil
		}
	}
	parishes, err := s.Store.ListParishes(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.CacheParishes(ctx, parishes)
	}
	return parishes, nil
}

// 4. CreateParishAccount registers a parish login with a hashed
// password and drops the cached roster so the new parish shows up
// immediately.
func (s *AuthService) CreateParishAccount(ctx context.Context, username, password string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Username: username, Password: hash}
	id, err := s.Store.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	if s.cache != nil {
		s.cache.InvalidateParishes(ctx)
	}
	return user, nil
}
