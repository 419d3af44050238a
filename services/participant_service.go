package services

import (
	"context"
	"unicode/utf8"

	"github.com/nathan-the-coder/survey-profiling-tool-backend/config"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/models"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/store"
)

const searchResultLimit = 10

// ParticipantUpdate is the inbound payload of PUT /participant/:id.
// Each section is optional; only present sections are updated.
type ParticipantUpdate struct {
	Household        map[string]interface{}   `json:"household"`
	FamilyMembers    []map[string]interface{} `json:"family_members"`
	HealthConditions map[string]interface{}   `json:"health_conditions"`
	SocioEconomic    map[string]interface{}   `json:"socio_economic"`
}

// InterfaceParticipantService serves tenant-scoped participant reads
// and the participant-driven edit/delete flow.
type InterfaceParticipantService interface {
	SearchParticipants(ctx context.Context, tenant store.Tenant, query string) ([]models.ParticipantSummary, error)
	ListAllParticipants(ctx context.Context, tenant store.Tenant) ([]models.ParticipantSummary, error)
	GetParticipantDetail(ctx context.Context, tenant store.Tenant, memberID uint) (*models.ParticipantDetail, error)
	UpdateParticipant(ctx context.Context, tenant store.Tenant, memberID uint, req *ParticipantUpdate) error
	DeleteParticipant(ctx context.Context, tenant store.Tenant, memberID uint) error
}

// ParticipantService provides tenant-scoped participant access
type ParticipantService struct {
	Store  store.Store
	Config *config.Config
}

// NewParticipantService creates a new participant service
func NewParticipantService(st store.Store, cfg *config.Config) InterfaceParticipantService {
	return &ParticipantService{
		Store:  st,
		Config: cfg,
	}
}

// 1. SearchParticipants matches full names case-insensitively,
// tenant-filtered, capped at 10 results. Queries shorter than two
// characters short-circuit to an empty result without touching
// storage.
func (s *ParticipantService) SearchParticipants(ctx context.Context, tenant store.Tenant, query string) ([]models.ParticipantSummary, error) {
	if utf8.RuneCountInString(query) < 2 {
		return []models.ParticipantSummary{}, nil
	}
	return s.Store.SearchParticipants(ctx, tenant, query, searchResultLimit)
}

// 2. ListAllParticipants returns the unbounded tenant-filtered roster.
func (s *ParticipantService) ListAllParticipants(ctx context.Context, tenant store.Tenant) ([]models.ParticipantSummary, error) {
	return s.Store.ListParticipants(ctx, tenant)
}

// resolveOwnedHousehold resolves a member and its household, then
// applies the tenant check. The check runs strictly after the
// household is known and before any dependent data is fetched, so a
// cross-tenant caller learns the record exists but nothing more.
func (s *ParticipantService) resolveOwnedHousehold(ctx context.Context, tenant store.Tenant, memberID uint) (*models.FamilyMember, *models.Household, error) {
	member, err := s.Store.GetFamilyMember(ctx, memberID)
	if err != nil {
		return nil, nil, err
	}
	if member == nil {
		return nil, nil, ErrParticipantNotFound
	}

	household, err := s.Store.GetHousehold(ctx, member.HouseholdID)
	if err != nil {
		return nil, nil, err
	}
	if household == nil {
		return nil, nil, ErrHouseholdNotFound
	}

	if tenant.Scoped() {
		if household.ParishName == nil || *household.ParishName != tenant.Parish {
			return nil, nil, ErrAccessDenied
		}
	}
	return member, household, nil
}

// 3. GetParticipantDetail returns the full household bundle for one
// member.
func (s *ParticipantService) GetParticipantDetail(ctx context.Context, tenant store.Tenant, memberID uint) (*models.ParticipantDetail, error) {
	member, household, err := s.resolveOwnedHousehold(ctx, tenant, memberID)
	if err != nil {
		return nil, err
	}

	members, err := s.Store.ListFamilyMembersByHousehold(ctx, member.HouseholdID)
	if err != nil {
		return nil, err
	}
	health, err := s.Store.GetHealthConditionsByHousehold(ctx, member.HouseholdID)
	if err != nil {
		return nil, err
	}
	socio, err := s.Store.GetSocioEconomicByHousehold(ctx, member.HouseholdID)
	if err != nil {
		return nil, err
	}

	return &models.ParticipantDetail{
		Household:        household,
		FamilyMembers:    members,
		HealthConditions: health,
		SocioEconomic:    socio,
		UserRole:         tenant.Role,
		UserParish:       tenant.Parish,
	}, nil
}

// 4. UpdateParticipant applies per-entity partial updates to the
// owning household's aggregate.
func (s *ParticipantService) UpdateParticipant(ctx context.Context, tenant store.Tenant, memberID uint, req *ParticipantUpdate) error {
	member, _, err := s.resolveOwnedHousehold(ctx, tenant, memberID)
	if err != nil {
		return err
	}
	householdID := member.HouseholdID

	return s.Store.WithTransaction(ctx, func(tx store.Store) error {
		if len(req.Household) > 0 {
			if err := tx.UpdateHousehold(ctx, householdID, req.Household); err != nil {
				return err
			}
		}
		for _, fm := range req.FamilyMembers {
			id, ok := memberIDOf(fm)
			if !ok {
				continue
			}
			updates := make(map[string]interface{}, len(fm))
			for k, v := range fm {
				if k == "member_id" {
					continue
				}
				updates[k] = v
			}
			if len(updates) == 0 {
				continue
			}
			if err := tx.UpdateFamilyMember(ctx, id, updates); err != nil {
				return err
			}
		}
		if len(req.HealthConditions) > 0 {
			if err := tx.UpdateHealthConditionsByHousehold(ctx, householdID, req.HealthConditions); err != nil {
				return err
			}
		}
		if len(req.SocioEconomic) > 0 {
			if err := tx.UpdateSocioEconomicByHousehold(ctx, householdID, req.SocioEconomic); err != nil {
				return err
			}
		}
		return nil
	})
}

// 5. DeleteParticipant removes a member. When the household has no
// members left afterwards, the whole aggregate is deleted with it.
func (s *ParticipantService) DeleteParticipant(ctx context.Context, tenant store.Tenant, memberID uint) error {
	member, _, err := s.resolveOwnedHousehold(ctx, tenant, memberID)
	if err != nil {
		return err
	}
	householdID := member.HouseholdID

	return s.Store.WithTransaction(ctx, func(tx store.Store) error {
		if err := tx.DeleteFamilyMember(ctx, memberID); err != nil {
			return err
		}
		remaining, err := tx.ListFamilyMembersByHousehold(ctx, householdID)
		if err != nil {
			return err
		}
		if len(remaining) == 0 {
			return tx.DeleteHousehold(ctx, householdID)
		}
		return nil
	})
}

func memberIDOf(fm map[string]interface{}) (uint, bool) {
	raw, ok := fm["member_id"]
	if !ok {
		return 0, false
	}
	switch id := raw.(type) {
	case float64:
		if id <= 0 {
			return 0, false
		}
		return uint(id), true
	case int:
		if id <= 0 {
			return 0, false
		}
		return uint(id), true
	default:
		return 0, false
	}
}
