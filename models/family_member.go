package models

import "time"

// FamilyMember belongs to exactly one Household.
type FamilyMember struct {
	MemberID    uint `gorm:"primaryKey;column:member_id" json:"member_id,omitempty"`
	HouseholdID uint `gorm:"not null;index;column:household_id" json:"household_id"`

	Role                   string      `gorm:"type:varchar(50);not null" json:"role"`
	FullName               string      `gorm:"type:varchar(150);not null;index;column:full_name" json:"full_name"`
	RelationToHeadCode     *string     `gorm:"type:varchar(10);column:relation_to_head_code" json:"relation_to_head_code"`
	SexCode                *string     `gorm:"type:varchar(10);column:sex_code" json:"sex_code"`
	Age                    *int        `json:"age"`
	CivilStatusCode        *string     `gorm:"type:varchar(10);column:civil_status_code" json:"civil_status_code"`
	TypeOfMarriage         *string     `gorm:"type:varchar(50);column:type_of_marriage" json:"type_of_marriage"`
	ReligionCode           *string     `gorm:"type:varchar(10);column:religion_code" json:"religion_code"`
	SacramentsCode         StringArray `gorm:"column:sacraments_code" json:"sacraments_code"`
	IsStudying             *bool       `gorm:"column:is_studying" json:"is_studying"`
	HighestEducAttainment  *string     `gorm:"type:varchar(100);column:highest_educ_attainment" json:"highest_educ_attainment"`
	Occupation             *string     `gorm:"type:varchar(150)" json:"occupation"`
	StatusOfWorkCode       *string     `gorm:"type:varchar(10);column:status_of_work_code" json:"status_of_work_code"`
	FullyImmunizedChild    *bool       `gorm:"column:fully_immunized_child" json:"fully_immunized_child"`
	OrganizationCode       StringArray `gorm:"column:organization_code" json:"organization_code"`
	Position               *string     `gorm:"type:varchar(150)" json:"position"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

func (FamilyMember) TableName() string {
	return "family_members"
}
