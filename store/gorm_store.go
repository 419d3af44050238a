package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nathan-the-coder/survey-profiling-tool-backend/config"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/models"
)

// OpenGorm opens the relational backend selected by configuration and
// applies the connection pool settings.
func OpenGorm(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.DBDriver == "sqlite" {
		dialector = sqlite.Open(cfg.SQLitePath)
	} else {
		dialector = mysql.Open(cfg.GetDSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	return db, nil
}

// GormStore implements Store over a direct relational connection.
// Inside a transaction all operations share one connection, so the
// transaction-scoped store serializes them with a mutex; the survey
// writer may then fan out member inserts without corrupting the tx.
type GormStore struct {
	db *gorm.DB
	mu *sync.Mutex
}

// NewGormStore wraps an open GORM handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// DB exposes the underlying handle for migration and seeding.
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

func (s *GormStore) locked() func() {
	if s.mu == nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func firstOrNil[T any](err error, out *T) (*T, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

// 1. GetUserByUsername looks up a parish account; nil when missing.
func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	defer s.locked()()
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return firstOrNil(err, &user)
}

// 2. CreateUser inserts a parish account.
func (s *GormStore) CreateUser(ctx context.Context, user *models.User) (uint, error) {
	defer s.locked()()
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return 0, err
	}
	return user.ID, nil
}

// 3. ListParishes returns all account usernames ordered by name.
func (s *GormStore) ListParishes(ctx context.Context) ([]string, error) {
	defer s.locked()()
	var names []string
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Order("username").Pluck("username", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// 4. CreateHousehold inserts the aggregate root and returns its id.
func (s *GormStore) CreateHousehold(ctx context.Context, h *models.Household) (uint, error) {
	defer s.locked()()
	if err := s.db.WithContext(ctx).Create(h).Error; err != nil {
		return 0, err
	}
	return h.HouseholdID, nil
}

// 5. GetHousehold resolves a household by id; nil when missing.
func (s *GormStore) GetHousehold(ctx context.Context, id uint) (*models.Household, error) {
	defer s.locked()()
	var h models.Household
	err := s.db.WithContext(ctx).Where("household_id = ?", id).First(&h).Error
	return firstOrNil(err, &h)
}

// 6. UpdateHousehold applies a partial update.
func (s *GormStore) UpdateHousehold(ctx context.Context, id uint, updates map[string]interface{}) error {
	defer s.locked()()
	return s.db.WithContext(ctx).Model(&models.Household{}).
		Where("household_id = ?", id).Updates(updates).Error
}

// 7. DeleteHousehold removes a household and cascades to its dependent
// records. Callers run it inside WithTransaction.
func (s *GormStore) DeleteHousehold(ctx context.Context, id uint) error {
	defer s.locked()()
	db := s.db.WithContext(ctx)
	if err := db.Where("household_id = ?", id).Delete(&models.FamilyMember{}).Error; err != nil {
		return err
	}
	if err := db.Where("household_id = ?", id).Delete(&models.HealthConditions{}).Error; err != nil {
		return err
	}
	if err := db.Where("household_id = ?", id).Delete(&models.SocioEconomic{}).Error; err != nil {
		return err
	}
	return db.Where("household_id = ?", id).Delete(&models.Household{}).Error
}

// 8. CreateFamilyMember inserts a member row and returns its id.
func (s *GormStore) CreateFamilyMember(ctx context.Context, m *models.FamilyMember) (uint, error) {
	defer s.locked()()
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return 0, err
	}
	return m.MemberID, nil
}

// 9. GetFamilyMember resolves a member by id; nil when missing.
func (s *GormStore) GetFamilyMember(ctx context.Context, id uint) (*models.FamilyMember, error) {
	defer s.locked()()
	var m models.FamilyMember
	err := s.db.WithContext(ctx).Where("member_id = ?", id).First(&m).Error
	return firstOrNil(err, &m)
}

// 10. ListFamilyMembersByHousehold returns members ordered by id.
func (s *GormStore) ListFamilyMembersByHousehold(ctx context.Context, householdID uint) ([]models.FamilyMember, error) {
	defer s.locked()()
	var members []models.FamilyMember
	err := s.db.WithContext(ctx).Where("household_id = ?", householdID).
		Order("member_id").Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// 11. UpdateFamilyMember applies a partial update.
func (s *GormStore) UpdateFamilyMember(ctx context.Context, id uint, updates map[string]interface{}) error {
	defer s.locked()()
	return s.db.WithContext(ctx).Model(&models.FamilyMember{}).
		Where("member_id = ?", id).Updates(updates).Error
}

// 12. DeleteFamilyMember removes a single member row.
func (s *GormStore) DeleteFamilyMember(ctx context.Context, id uint) error {
	defer s.locked()()
	return s.db.WithContext(ctx).Where("member_id = ?", id).Delete(&models.FamilyMember{}).Error
}

// 13. CreateHealthConditions inserts the health section row.
func (s *GormStore) CreateHealthConditions(ctx context.Context, h *models.HealthConditions) (uint, error) {
	defer s.locked()()
	if err := s.db.WithContext(ctx).Create(h).Error; err != nil {
		return 0, err
	}
	return h.HealthConditionID, nil
}

// 14. GetHealthConditionsByHousehold; nil when missing.
func (s *GormStore) GetHealthConditionsByHousehold(ctx context.Context, householdID uint) (*models.HealthConditions, error) {
	defer s.locked()()
	var h models.HealthConditions
	err := s.db.WithContext(ctx).Where("household_id = ?", householdID).First(&h).Error
	return firstOrNil(err, &h)
}

// 15. UpdateHealthConditionsByHousehold applies a partial update.
func (s *GormStore) UpdateHealthConditionsByHousehold(ctx context.Context, householdID uint, updates map[string]interface{}) error {
	defer s.locked()()
	return s.db.WithContext(ctx).Model(&models.HealthConditions{}).
		Where("household_id = ?", householdID).Updates(updates).Error
}

// 16. CreateSocioEconomic inserts the socio-economic section row.
func (s *GormStore) CreateSocioEconomic(ctx context.Context, se *models.SocioEconomic) (uint, error) {
	defer s.locked()()
	if err := s.db.WithContext(ctx).Create(se).Error; err != nil {
		return 0, err
	}
	return se.SocioEconomicID, nil
}

// 17. GetSocioEconomicByHousehold; nil when missing.
func (s *GormStore) GetSocioEconomicByHousehold(ctx context.Context, householdID uint) (*models.SocioEconomic, error) {
	defer s.locked()()
	var se models.SocioEconomic
	err := s.db.WithContext(ctx).Where("household_id = ?", householdID).First(&se).Error
	return firstOrNil(err, &se)
}

// 18. UpdateSocioEconomicByHousehold applies a partial update.
func (s *GormStore) UpdateSocioEconomicByHousehold(ctx context.Context, householdID uint, updates map[string]interface{}) error {
	defer s.locked()()
	return s.db.WithContext(ctx).Model(&models.SocioEconomic{}).
		Where("household_id = ?", householdID).Updates(updates).Error
}

func (s *GormStore) participantQuery(ctx context.Context, tenant Tenant) *gorm.DB {
	q := s.db.WithContext(ctx).Table("family_members").
		Select("family_members.member_id AS id, family_members.full_name, family_members.role, " +
			"family_members.relation_to_head_code, family_members.sex_code, family_members.age, " +
			"households.purok_gimong, households.barangay_name, households.municipality, households.parish_name").
		Joins("INNER JOIN households ON households.household_id = family_members.household_id")
	if tenant.Scoped() {
		q = q.Where("households.parish_name = ?", tenant.Parish)
	}
	return q
}

// 19. SearchParticipants runs a case-insensitive substring match on the
// full name, tenant-filtered, ordered by name.
func (s *GormStore) SearchParticipants(ctx context.Context, tenant Tenant, query string, limit int) ([]models.ParticipantSummary, error) {
	defer s.locked()()
	pattern := "%" + strings.ToLower(query) + "%"
	results := []models.ParticipantSummary{}
	err := s.participantQuery(ctx, tenant).
		Where("LOWER(family_members.full_name) LIKE ?", pattern).
		Order("family_members.full_name ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// 20. ListParticipants returns the full tenant-filtered roster.
func (s *GormStore) ListParticipants(ctx context.Context, tenant Tenant) ([]models.ParticipantSummary, error) {
	defer s.locked()()
	results := []models.ParticipantSummary{}
	err := s.participantQuery(ctx, tenant).
		Order("family_members.full_name ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// 21. WithTransaction runs fn against a transaction-scoped store with a
// real BEGIN/COMMIT/ROLLBACK boundary.
func (s *GormStore) WithTransaction(ctx context.Context, fn func(tx Store) error) error {
	if s.mu != nil {
		// Already inside a transaction; reuse the current scope.
		return fn(s)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, mu: &sync.Mutex{}})
	})
}

// 22. Ping checks the underlying connection.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(pingCtx)
}
