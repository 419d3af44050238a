package store

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nathan-the-coder/survey-profiling-tool-backend/models"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Household{},
		&models.FamilyMember{},
		&models.HealthConditions{},
		&models.SocioEconomic{},
	))
	return NewGormStore(db)
}

func strPtr(s string) *string { return &s }

func seedHousehold(t *testing.T, s *GormStore, parish string, memberNames ...string) (uint, []uint) {
	t.Helper()
	ctx := context.Background()

	hid, err := s.CreateHousehold(ctx, &models.Household{
		ParishName:   strPtr(parish),
		BarangayName: strPtr("Centro"),
	})
	require.NoError(t, err)

	memberIDs := make([]uint, 0, len(memberNames))
	for _, name := range memberNames {
		mid, err := s.CreateFamilyMember(ctx, &models.FamilyMember{
			HouseholdID: hid,
			Role:        models.RoleMember,
			FullName:    name,
		})
		require.NoError(t, err)
		memberIDs = append(memberIDs, mid)
	}
	return hid, memberIDs
}

func TestLookupsReturnNilOnMiss(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	h, err := s.GetHousehold(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, h)

	m, err := s.GetFamilyMember(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, m)

	u, err := s.GetUserByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, u)

	hc, err := s.GetHealthConditionsByHousehold(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, hc)
}

func TestHouseholdRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	hid, _ := seedHousehold(t, s, "San Jacinto", "Juan Dela Cruz")

	h, err := s.GetHousehold(ctx, hid)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "San Jacinto", *h.ParishName)

	require.NoError(t, s.UpdateHousehold(ctx, hid, map[string]interface{}{"barangay_name": "Annafunan"}))
	h, err = s.GetHousehold(ctx, hid)
	require.NoError(t, err)
	assert.Equal(t, "Annafunan", *h.BarangayName)
}

func TestStringArrayColumnRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	hid, _ := seedHousehold(t, s, "San Jacinto")
	_, err := s.CreateHealthConditions(ctx, &models.HealthConditions{
		HouseholdID:        hid,
		CommonIllnessCodes: models.StringArray{"02", "01", "05"},
	})
	require.NoError(t, err)

	hc, err := s.GetHealthConditionsByHousehold(ctx, hid)
	require.NoError(t, err)
	require.NotNil(t, hc)
	assert.Equal(t, models.StringArray{"02", "01", "05"}, hc.CommonIllnessCodes)
}

func TestSearchParticipantsTenantFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedHousehold(t, s, "San Jacinto", "Maria Santos")
	seedHousehold(t, s, "Our Lady of Piat", "Maria Aggabao")

	scoped := Tenant{Role: RoleParish, Parish: "San Jacinto"}
	results, err := s.SearchParticipants(ctx, scoped, "maria", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Maria Santos", results[0].FullName)
	require.NotNil(t, results[0].ParishName)
	assert.Equal(t, "San Jacinto", *results[0].ParishName)

	// the archdiocese sees across parishes
	all, err := s.SearchParticipants(ctx, Tenant{Role: RoleArchdiocese}, "maria", 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// an anonymous caller matches nothing
	none, err := s.SearchParticipants(ctx, Tenant{}, "maria", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchParticipantsOrderAndLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedHousehold(t, s, "San Jacinto", "Carla Reyes", "Carmen Bautista", "Carlos Uy")

	results, err := s.SearchParticipants(ctx, Tenant{Role: RoleArchdiocese}, "car", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Carla Reyes", results[0].FullName)
	assert.Equal(t, "Carlos Uy", results[1].FullName)
}

func TestListParticipants(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedHousehold(t, s, "San Jacinto", "Beta Cruz", "Alpha Cruz")

	results, err := s.ListParticipants(ctx, Tenant{Role: RoleParish, Parish: "San Jacinto"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Alpha Cruz", results[0].FullName)
}

func TestWithTransactionRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.WithTransaction(ctx, func(tx Store) error {
		_, err := tx.CreateHousehold(ctx, &models.Household{ParishName: strPtr("San Jacinto")})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	results, err := s.ListParticipants(ctx, Tenant{Role: RoleArchdiocese})
	require.NoError(t, err)
	assert.Empty(t, results)

	var count int64
	require.NoError(t, s.DB().Model(&models.Household{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteHouseholdCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	hid, memberIDs := seedHousehold(t, s, "San Jacinto", "Juan Dela Cruz")
	_, err := s.CreateHealthConditions(ctx, &models.HealthConditions{HouseholdID: hid})
	require.NoError(t, err)
	_, err = s.CreateSocioEconomic(ctx, &models.SocioEconomic{HouseholdID: hid})
	require.NoError(t, err)

	require.NoError(t, s.DeleteHousehold(ctx, hid))

	h, err := s.GetHousehold(ctx, hid)
	require.NoError(t, err)
	assert.Nil(t, h)

	m, err := s.GetFamilyMember(ctx, memberIDs[0])
	require.NoError(t, err)
	assert.Nil(t, m)

	hc, err := s.GetHealthConditionsByHousehold(ctx, hid)
	require.NoError(t, err)
	assert.Nil(t, hc)

	se, err := s.GetSocioEconomicByHousehold(ctx, hid)
	require.NoError(t, err)
	assert.Nil(t, se)
}
