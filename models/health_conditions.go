package models

import "time"

// HealthConditions captures the illness/treatment/water/sanitation
// section of one household's survey. One row per household; the unique
// index on household_id enforces what the submission flow assumes.
type HealthConditions struct {
	HealthConditionID uint `gorm:"primaryKey;column:health_condition_id" json:"health_condition_id,omitempty"`
	HouseholdID       uint `gorm:"not null;uniqueIndex;column:household_id" json:"household_id"`

	CommonIllnessCodes        StringArray `gorm:"column:common_illness_codes" json:"common_illness_codes"`
	TreatmentSourceCode       StringArray `gorm:"column:treatment_source_code" json:"treatment_source_code"`
	PotableWaterSourceCode    StringArray `gorm:"column:potable_water_source_code" json:"potable_water_source_code"`
	LightingSourceCode        StringArray `gorm:"column:lighting_source_code" json:"lighting_source_code"`
	CookingSourceCode         StringArray `gorm:"column:cooking_source_code" json:"cooking_source_code"`
	GarbageDisposalCode       StringArray `gorm:"column:garbage_disposal_code" json:"garbage_disposal_code"`
	ToiletFacilityCode        StringArray `gorm:"column:toilet_facility_code" json:"toilet_facility_code"`
	WaterToToiletDistanceCode *string     `gorm:"type:varchar(10);column:water_to_toilet_distance_code" json:"water_to_toilet_distance_code"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

func (HealthConditions) TableName() string {
	return "health_conditions"
}
