package store

import (
	"context"
	"fmt"

	"github.com/nathan-the-coder/survey-profiling-tool-backend/config"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/models"
)

// Caller roles. A parish account only sees its own households; the
// archdiocese role bypasses tenant filtering entirely.
const (
	RoleArchdiocese = "archdiocese"
	RoleAdmin       = "admin"
	RoleParish      = "parish"
)

// Tenant carries the caller's data-visibility scope, derived once per
// request from the identity header or token.
type Tenant struct {
	Role   string
	Parish string
}

// Scoped reports whether household-joined queries must be filtered by
// the caller's parish. Anyone who is not the archdiocese is filtered,
// including callers with no identity at all, who match nothing.
func (t Tenant) Scoped() bool {
	return t.Role != RoleArchdiocese
}

// Store is the uniform data access abstraction over a swappable
// persistence backend. Single-record lookups return (nil, nil) when the
// record does not exist; every other storage fault is an error.
type Store interface {
	// Users
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (uint, error)
	ListParishes(ctx context.Context) ([]string, error)

	// Households
	CreateHousehold(ctx context.Context, h *models.Household) (uint, error)
	GetHousehold(ctx context.Context, id uint) (*models.Household, error)
	UpdateHousehold(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteHousehold(ctx context.Context, id uint) error

	// Family members
	CreateFamilyMember(ctx context.Context, m *models.FamilyMember) (uint, error)
	GetFamilyMember(ctx context.Context, id uint) (*models.FamilyMember, error)
	ListFamilyMembersByHousehold(ctx context.Context, householdID uint) ([]models.FamilyMember, error)
	UpdateFamilyMember(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteFamilyMember(ctx context.Context, id uint) error

	// Health conditions
	CreateHealthConditions(ctx context.Context, h *models.HealthConditions) (uint, error)
	GetHealthConditionsByHousehold(ctx context.Context, householdID uint) (*models.HealthConditions, error)
	UpdateHealthConditionsByHousehold(ctx context.Context, householdID uint, updates map[string]interface{}) error

	// Socio-economic profiles
	CreateSocioEconomic(ctx context.Context, s *models.SocioEconomic) (uint, error)
	GetSocioEconomicByHousehold(ctx context.Context, householdID uint) (*models.SocioEconomic, error)
	UpdateSocioEconomicByHousehold(ctx context.Context, householdID uint, updates map[string]interface{}) error

	// Tenant-scoped participant queries
	SearchParticipants(ctx context.Context, tenant Tenant, query string, limit int) ([]models.ParticipantSummary, error)
	ListParticipants(ctx context.Context, tenant Tenant) ([]models.ParticipantSummary, error)

	// WithTransaction runs fn against a transaction-scoped store.
	// Either every write inside fn is committed, or none are.
	WithTransaction(ctx context.Context, fn func(tx Store) error) error

	// Ping checks backend connectivity.
	Ping(ctx context.Context) error
}

// New selects the persistence backend from configuration. The choice is
// made once at startup; callers only ever see the Store interface.
func New(cfg *config.Config) (Store, error) {
	switch cfg.DBDriver {
	case "mysql", "sqlite":
		db, err := OpenGorm(cfg)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db), nil
	case "rest":
		return NewRestStore(cfg.RestBaseURL, cfg.RestAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}
