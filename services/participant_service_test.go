package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathan-the-coder/survey-profiling-tool-backend/models"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/store"
)

func seedParticipantHousehold(t *testing.T, st *store.GormStore, parish string, names ...string) (uint, []uint) {
	t.Helper()
	ctx := context.Background()

	hid, err := st.CreateHousehold(ctx, &models.Household{
		ParishName:   &parish,
		BarangayName: strPtr("Centro"),
	})
	require.NoError(t, err)
	_, err = st.CreateHealthConditions(ctx, &models.HealthConditions{HouseholdID: hid})
	require.NoError(t, err)
	_, err = st.CreateSocioEconomic(ctx, &models.SocioEconomic{HouseholdID: hid})
	require.NoError(t, err)

	ids := make([]uint, 0, len(names))
	for _, name := range names {
		mid, err := st.CreateFamilyMember(ctx, &models.FamilyMember{
			HouseholdID: hid,
			Role:        models.RoleMember,
			FullName:    name,
		})
		require.NoError(t, err)
		ids = append(ids, mid)
	}
	return hid, ids
}

func strPtr(s string) *string { return &s }

// trackingStore records whether the search ever reached storage.
type trackingStore struct {
	store.Store
	searched bool
}

func (s *trackingStore) SearchParticipants(ctx context.Context, tenant store.Tenant, query string, limit int) ([]models.ParticipantSummary, error) {
	s.searched = true
	return s.Store.SearchParticipants(ctx, tenant, query, limit)
}

func TestSearchShortQueryShortCircuits(t *testing.T) {
	tracking := &trackingStore{Store: newTestStore(t)}
	svc := NewParticipantService(tracking, testConfig())

	results, err := svc.SearchParticipants(context.Background(), store.Tenant{Role: store.RoleArchdiocese}, "a")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.False(t, tracking.searched)

	// one rune is one character, however many bytes it takes
	results, err = svc.SearchParticipants(context.Background(), store.Tenant{Role: store.RoleArchdiocese}, "ñ")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.False(t, tracking.searched)
}

func TestSearchRespectsTenant(t *testing.T) {
	st := newTestStore(t)
	svc := NewParticipantService(st, testConfig())
	ctx := context.Background()

	seedParticipantHousehold(t, st, "San Jacinto", "Maria Santos")
	seedParticipantHousehold(t, st, "Our Lady of Piat", "Maria Aggabao")

	results, err := svc.SearchParticipants(ctx, store.Tenant{Role: store.RoleParish, Parish: "San Jacinto"}, "maria")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Maria Santos", results[0].FullName)
}

func TestGetParticipantDetail(t *testing.T) {
	st := newTestStore(t)
	svc := NewParticipantService(st, testConfig())
	ctx := context.Background()

	_, memberIDs := seedParticipantHousehold(t, st, "San Jacinto", "Juan Dela Cruz", "Maria Dela Cruz")

	tenant := store.Tenant{Role: store.RoleParish, Parish: "San Jacinto"}
	detail, err := svc.GetParticipantDetail(ctx, tenant, memberIDs[0])
	require.NoError(t, err)
	require.NotNil(t, detail.Household)
	assert.Equal(t, "San Jacinto", *detail.Household.ParishName)
	assert.Len(t, detail.FamilyMembers, 2)
	assert.NotNil(t, detail.HealthConditions)
	assert.NotNil(t, detail.SocioEconomic)
	assert.Equal(t, store.RoleParish, detail.UserRole)
	assert.Equal(t, "San Jacinto", detail.UserParish)
}

func TestGetParticipantDetailUnknownMember(t *testing.T) {
	svc := NewParticipantService(newTestStore(t), testConfig())

	_, err := svc.GetParticipantDetail(context.Background(), store.Tenant{Role: store.RoleArchdiocese}, 999)
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestGetParticipantDetailCrossTenantDenied(t *testing.T) {
	st := newTestStore(t)
	svc := NewParticipantService(st, testConfig())
	ctx := context.Background()

	_, memberIDs := seedParticipantHousehold(t, st, "Our Lady of Piat", "Maria Aggabao")

	// denied, not hidden: the caller learns the record exists
	_, err := svc.GetParticipantDetail(ctx, store.Tenant{Role: store.RoleParish, Parish: "San Jacinto"}, memberIDs[0])
	assert.ErrorIs(t, err, ErrAccessDenied)

	// the archdiocese reads across parishes
	detail, err := svc.GetParticipantDetail(ctx, store.Tenant{Role: store.RoleArchdiocese, Parish: "Archdiocese of Tuguegarao"}, memberIDs[0])
	require.NoError(t, err)
	assert.Equal(t, "Maria Aggabao", detail.FamilyMembers[0].FullName)
}

func TestUpdateParticipantPartialSections(t *testing.T) {
	st := newTestStore(t)
	svc := NewParticipantService(st, testConfig())
	ctx := context.Background()

	hid, memberIDs := seedParticipantHousehold(t, st, "San Jacinto", "Juan Dela Cruz")
	tenant := store.Tenant{Role: store.RoleParish, Parish: "San Jacinto"}

	err := svc.UpdateParticipant(ctx, tenant, memberIDs[0], &ParticipantUpdate{
		Household: map[string]interface{}{"barangay_name": "Annafunan"},
		FamilyMembers: []map[string]interface{}{
			{"member_id": float64(memberIDs[0]), "occupation": "Farmer"},
		},
		SocioEconomic: map[string]interface{}{"income_monthly_code": "05"},
	})
	require.NoError(t, err)

	h, err := st.GetHousehold(ctx, hid)
	require.NoError(t, err)
	assert.Equal(t, "Annafunan", *h.BarangayName)
	// untouched sections keep their values
	assert.Equal(t, "San Jacinto", *h.ParishName)

	m, err := st.GetFamilyMember(ctx, memberIDs[0])
	require.NoError(t, err)
	require.NotNil(t, m.Occupation)
	assert.Equal(t, "Farmer", *m.Occupation)

	se, err := st.GetSocioEconomicByHousehold(ctx, hid)
	require.NoError(t, err)
	require.NotNil(t, se.IncomeMonthlyCode)
	assert.Equal(t, "05", *se.IncomeMonthlyCode)
}

func TestUpdateParticipantCrossTenantDenied(t *testing.T) {
	st := newTestStore(t)
	svc := NewParticipantService(st, testConfig())
	ctx := context.Background()

	_, memberIDs := seedParticipantHousehold(t, st, "Our Lady of Piat", "Maria Aggabao")

	err := svc.UpdateParticipant(ctx, store.Tenant{Role: store.RoleParish, Parish: "San Jacinto"}, memberIDs[0], &ParticipantUpdate{
		Household: map[string]interface{}{"barangay_name": "Hacked"},
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDeleteParticipantKeepsHouseholdWithRemainingMembers(t *testing.T) {
	st := newTestStore(t)
	svc := NewParticipantService(st, testConfig())
	ctx := context.Background()

	hid, memberIDs := seedParticipantHousehold(t, st, "San Jacinto", "Juan Dela Cruz", "Maria Dela Cruz")
	tenant := store.Tenant{Role: store.RoleParish, Parish: "San Jacinto"}

	require.NoError(t, svc.DeleteParticipant(ctx, tenant, memberIDs[0]))

	h, err := st.GetHousehold(ctx, hid)
	require.NoError(t, err)
	assert.NotNil(t, h)

	members, err := st.ListFamilyMembersByHousehold(ctx, hid)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestDeleteLastParticipantRemovesHousehold(t *testing.T) {
	st := newTestStore(t)
	svc := NewParticipantService(st, testConfig())
	ctx := context.Background()

	hid, memberIDs := seedParticipantHousehold(t, st, "San Jacinto", "Juan Dela Cruz")
	tenant := store.Tenant{Role: store.RoleParish, Parish: "San Jacinto"}

	require.NoError(t, svc.DeleteParticipant(ctx, tenant, memberIDs[0]))

	h, err := st.GetHousehold(ctx, hid)
	require.NoError(t, err)
	assert.Nil(t, h)

	hc, err := st.GetHealthConditionsByHousehold(ctx, hid)
	require.NoError(t, err)
	assert.Nil(t, hc)

	se, err := st.GetSocioEconomicByHousehold(ctx, hid)
	require.NoError(t, err)
	assert.Nil(t, se)
}
