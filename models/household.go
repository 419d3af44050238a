package models

import "time"

// Household is the aggregate root of one surveyed family unit. All
// dependent records hang off HouseholdID, and parish_name is the sole
// tenant-partition key for everything reachable through it.
type Household struct {
	HouseholdID uint `gorm:"primaryKey;column:household_id" json:"household_id,omitempty"`

	PurokGimong              *string     `gorm:"type:varchar(150);column:purok_gimong" json:"purok_gimong"`
	BarangayName             *string     `gorm:"type:varchar(150);column:barangay_name" json:"barangay_name"`
	Municipality             *string     `gorm:"type:varchar(150)" json:"municipality"`
	Province                 *string     `gorm:"type:varchar(150)" json:"province"`
	ModeOfTransportation     StringArray `gorm:"column:mode_of_transportation" json:"mode_of_transportation"`
	RoadStructure            *string     `gorm:"type:varchar(100);column:road_structure" json:"road_structure"`
	UrbanRuralClassification *string     `gorm:"type:varchar(50);column:urban_rural_classification" json:"urban_rural_classification"`
	ParishName               *string     `gorm:"type:varchar(150);index;column:parish_name" json:"parish_name"`
	DiocesePrelature         *string     `gorm:"type:varchar(150);column:diocese_prelature" json:"diocese_prelature"`
	YearsResidency           *int        `gorm:"column:years_residency" json:"years_residency"`
	NumFamilyMembers         *int        `gorm:"column:num_family_members" json:"num_family_members"`
	FamilyStructure          *string     `gorm:"type:varchar(100);column:family_structure" json:"family_structure"`
	LocalDialect             *string     `gorm:"type:varchar(100);column:local_dialect" json:"local_dialect"`
	Ethnicity                *string     `gorm:"type:varchar(100)" json:"ethnicity"`
	MissionaryCompanion      *string     `gorm:"type:varchar(150);column:missionary_companion" json:"missionary_companion"`
	DateOfListing            *string     `gorm:"type:varchar(50);column:date_of_listing" json:"date_of_listing"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`

	// Relations
	FamilyMembers    []FamilyMember    `gorm:"foreignKey:HouseholdID;constraint:OnDelete:CASCADE" json:"family_members,omitempty"`
	HealthConditions *HealthConditions `gorm:"foreignKey:HouseholdID;constraint:OnDelete:CASCADE" json:"health_conditions,omitempty"`
	SocioEconomic    *SocioEconomic    `gorm:"foreignKey:HouseholdID;constraint:OnDelete:CASCADE" json:"socio_economic,omitempty"`
}

func (Household) TableName() string {
	return "households"
}
