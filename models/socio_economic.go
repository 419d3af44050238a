package models

import "time"

// SocioEconomic captures the income/housing/membership section of one
// household's survey. One row per household, same uniqueness rule as
// HealthConditions.
type SocioEconomic struct {
	SocioEconomicID uint `gorm:"primaryKey;column:socio_economic_id" json:"socio_economic_id,omitempty"`
	HouseholdID     uint `gorm:"not null;uniqueIndex;column:household_id" json:"household_id"`

	IncomeMonthlyCode       *string     `gorm:"type:varchar(10);column:income_monthly_code" json:"income_monthly_code"`
	ExpensesWeeklyCode      *string     `gorm:"type:varchar(10);column:expenses_weekly_code" json:"expenses_weekly_code"`
	HasSavings              *bool       `gorm:"column:has_savings" json:"has_savings"`
	SavingsLocationCode     StringArray `gorm:"column:savings_location_code" json:"savings_location_code"`
	HouseLotOwnershipCode   StringArray `gorm:"column:house_lot_ownership_code" json:"house_lot_ownership_code"`
	HouseClassificationCode StringArray `gorm:"column:house_classification_code" json:"house_classification_code"`
	LandAreaHectares        *float64    `gorm:"column:land_area_hectares" json:"land_area_hectares"`
	DistFromChurchCode      *string     `gorm:"type:varchar(10);column:dist_from_church_code" json:"dist_from_church_code"`
	DistFromMarketCode      *string     `gorm:"type:varchar(10);column:dist_from_market_code" json:"dist_from_market_code"`
	Organizations           StringArray `json:"organizations"`
	OrganizationsOthersText *string     `gorm:"type:varchar(200);column:organizations_others_text" json:"organizations_others_text"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

func (SocioEconomic) TableName() string {
	return "socio_economic"
}
