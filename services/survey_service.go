package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nathan-the-coder/survey-profiling-tool-backend/config"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/models"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/store"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/utils"
)

// SurveySubmission is the inbound payload of POST /submit-survey. The
// data envelope is required; its sections are loosely typed form maps.
type SurveySubmission struct {
	Data *SurveyData `json:"data"`
}

// SurveyData carries the four form sections of one household survey.
type SurveyData struct {
	General utils.Section `json:"general"`
	Primary utils.Section `json:"primary"`
	Health  utils.Section `json:"health"`
	Socio   utils.Section `json:"socio"`
}

// InterfaceSurveyService ingests survey submissions.
type InterfaceSurveyService interface {
	SubmitSurvey(ctx context.Context, req *SurveySubmission) (uint, error)
}

// SurveyService orchestrates the multi-record survey write
type SurveyService struct {
	Store  store.Store
	Config *config.Config
}

// NewSurveyService creates a new survey service
func NewSurveyService(st store.Store, cfg *config.Config) InterfaceSurveyService {
	return &SurveyService{
		Store:  st,
		Config: cfg,
	}
}

// SubmitSurvey persists one household aggregate - the household row,
// its family members, one health conditions row and one socio-economic
// row - inside a single transaction. The household id must exist
// before any dependent insert; the plain member inserts are
// independent of each other and fan out concurrently. Any failure
// rolls the whole submission back.
func (s *SurveyService) SubmitSurvey(ctx context.Context, req *SurveySubmission) (uint, error) {
	if req == nil || req.Data == nil {
		return 0, ErrInvalidSubmission
	}

	general := req.Data.General
	primary := req.Data.Primary
	health := req.Data.Health
	socio := req.Data.Socio

	household := buildHousehold(general, socio)
	head := buildPrimaryMember(primary, models.RoleHead, "head_name", "head_marriage", "head_religion", "head_sex", "head_age", "head_educ", "head_job", "head_work_status")
	spouse := buildPrimaryMember(primary, models.RoleSpouse, "spouse_name", "spouse_marriage", "spouse_religion", "spouse_sex", "spouse_age", "spouse_educ", "spouse_job", "spouse_work_status")
	members := collectOtherMembers(primary)

	var householdID uint
	err := s.Store.WithTransaction(ctx, func(tx store.Store) error {
		id, err := tx.CreateHousehold(ctx, household)
		if err != nil {
			return err
		}
		householdID = id

		// A missing head or spouse name silently skips that role.
		if head != nil {
			head.HouseholdID = id
			if _, err := tx.CreateFamilyMember(ctx, head); err != nil {
				return err
			}
		}
		if spouse != nil {
			spouse.HouseholdID = id
			if _, err := tx.CreateFamilyMember(ctx, spouse); err != nil {
				return err
			}
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, member := range members {
			member := member
			member.HouseholdID = id
			g.Go(func() error {
				_, err := tx.CreateFamilyMember(gctx, member)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		healthRecord := buildHealthConditions(health, id)
		if _, err := tx.CreateHealthConditions(ctx, healthRecord); err != nil {
			return err
		}

		socioRecord := buildSocioEconomic(socio, id)
		if _, err := tx.CreateSocioEconomic(ctx, socioRecord); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return householdID, nil
}

func buildHousehold(general, socio utils.Section) *models.Household {
	municipality := utils.GetValue(general, "municipality-select")
	if municipality == nil {
		municipality = utils.GetValue(general, "municipalityName")
	}

	return &models.Household{
		PurokGimong:              utils.GetValue(general, "purokGimong"),
		BarangayName:             utils.GetValue(general, "barangayName"),
		Municipality:             municipality,
		Province:                 utils.GetValue(general, "provinceName"),
		ModeOfTransportation:     utils.GetArray(general, "modeOfTransportation"),
		RoadStructure:            utils.GetValue(general, "road_Structure"),
		UrbanRuralClassification: utils.GetValue(general, "urban_ruralClassification"),
		ParishName:               utils.GetValue(general, "nameOfParish"),
		DiocesePrelature:         utils.GetValue(general, "diocesePrelatureName"),
		YearsResidency:           utils.GetInt(general, "yrOfResInTheCommunity"),
		NumFamilyMembers:         utils.GetInt(general, "numOfFamMembers"),
		FamilyStructure:          utils.GetValue(general, "familyStructure"),
		LocalDialect:             utils.GetValue(general, "lclDialect"),
		Ethnicity:                utils.GetValue(general, "ethnicity"),
		// The listing metadata rides in the socio section of the form.
		MissionaryCompanion: utils.GetValue(socio, "missionary_companion"),
		DateOfListing:       utils.GetValue(socio, "listening_date"),
	}
}

// buildPrimaryMember assembles the head or spouse record. A missing
// name means the role was not surveyed and yields nil, not an error.
func buildPrimaryMember(primary utils.Section, role, nameKey, marriageKey, religionKey, sexKey, ageKey, educKey, jobKey, workStatusKey string) *models.FamilyMember {
	name := utils.GetValue(primary, nameKey)
	if name == nil {
		return nil
	}
	return &models.FamilyMember{
		Role:                  role,
		FullName:              *name,
		TypeOfMarriage:        utils.GetValue(primary, marriageKey),
		CivilStatusCode:       utils.GetValue(primary, "civil_status_code"),
		ReligionCode:          utils.GetValue(primary, religionKey),
		SexCode:               utils.GetValue(primary, sexKey),
		Age:                   utils.GetInt(primary, ageKey),
		HighestEducAttainment: utils.GetValue(primary, educKey),
		Occupation:            utils.GetValue(primary, jobKey),
		StatusOfWorkCode:      utils.GetValue(primary, workStatusKey),
	}
}

// collectOtherMembers assembles the repeated-member section. The form
// submits index-aligned parallel arrays (m_name[i], m_sex[i], ...);
// they are folded into ordered member structs here, once, at the
// boundary. An empty name at an index skips that slot; a missing
// parallel entry normalizes to null and never fails the record.
func collectOtherMembers(primary utils.Section) []*models.FamilyMember {
	count := utils.ArrayLen(primary, "m_name")
	members := make([]*models.FamilyMember, 0, count)

	for i := 0; i < count; i++ {
		name := utils.Str(utils.At(primary, "m_name", i))
		if name == nil {
			continue
		}

		role := utils.Str(utils.At(primary, "m_role", i))
		if role == nil {
			defaultRole := models.RoleMember
			role = &defaultRole
		}

		members = append(members, &models.FamilyMember{
			Role:                  *role,
			FullName:              *name,
			RelationToHeadCode:    utils.Str(utils.At(primary, "m_relation", i)),
			SexCode:               utils.Str(utils.At(primary, "m_sex", i)),
			Age:                   toIntPtr(utils.ToNumber(utils.At(primary, "m_age", i))),
			CivilStatusCode:       utils.Str(utils.At(primary, "m_civil", i)),
			ReligionCode:          utils.Str(utils.At(primary, "m_religion", i)),
			SacramentsCode:        utils.ToStringArray(utils.At(primary, "m_sacraments", i)),
			IsStudying:            boolAt(primary, "m_studying", i),
			HighestEducAttainment: utils.Str(utils.At(primary, "m_educ", i)),
			Occupation:            utils.Str(utils.At(primary, "m_job", i)),
			StatusOfWorkCode:      utils.Str(utils.At(primary, "m_work_status", i)),
			FullyImmunizedChild:   boolAt(primary, "m_immunized", i),
			OrganizationCode:      utils.ToStringArray(utils.At(primary, "m_organization", i)),
			Position:              utils.Str(utils.At(primary, "m_position", i)),
		})
	}
	return members
}

func buildHealthConditions(health utils.Section, householdID uint) *models.HealthConditions {
	return &models.HealthConditions{
		HouseholdID:               householdID,
		CommonIllnessCodes:        utils.GetArray(health, "common_illness"),
		TreatmentSourceCode:       utils.GetArray(health, "treatment_source"),
		PotableWaterSourceCode:    utils.GetArray(health, "water_source"),
		LightingSourceCode:        utils.GetArray(health, "lighting_source"),
		CookingSourceCode:         utils.GetArray(health, "cooking_source"),
		GarbageDisposalCode:       utils.GetArray(health, "garbage_disposal"),
		ToiletFacilityCode:        utils.GetArray(health, "toilet_type"),
		WaterToToiletDistanceCode: utils.GetValue(health, "toilet_distance"),
	}
}

func buildSocioEconomic(socio utils.Section, householdID uint) *models.SocioEconomic {
	return &models.SocioEconomic{
		HouseholdID:             householdID,
		IncomeMonthlyCode:       utils.GetValue(socio, "income_monthly"),
		ExpensesWeeklyCode:      utils.GetValue(socio, "expenses_weekly"),
		HasSavings:              utils.GetBool(socio, "has_savings"),
		SavingsLocationCode:     utils.GetArray(socio, "savings_location"),
		HouseLotOwnershipCode:   utils.GetArray(socio, "house_ownership"),
		HouseClassificationCode: utils.GetArray(socio, "house_classification"),
		LandAreaHectares:        utils.GetNumber(socio, "land_area"),
		DistFromChurchCode:      utils.GetValue(socio, "distance_church"),
		DistFromMarketCode:      utils.GetValue(socio, "distance_market"),
		Organizations:           utils.GetArray(socio, "organizations"),
		OrganizationsOthersText: utils.GetValue(socio, "organizations_others_text"),
	}
}

// boolAt decodes a tri-state boolean at one parallel-array index. A
// slot that was never submitted stays unanswered; only a submitted
// value (an explicit null included) can mean "no".
func boolAt(primary utils.Section, key string, i int) *bool {
	v, ok := utils.AtOK(primary, key, i)
	if !ok {
		return nil
	}
	return utils.ToBool(v)
}

func toIntPtr(f *float64) *int {
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}
