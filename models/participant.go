package models

// ParticipantSummary is one row of a participant search or listing:
// a family member joined with the location of its household.
type ParticipantSummary struct {
	ID                 uint    `json:"id"`
	FullName           string  `json:"full_name"`
	Role               string  `json:"role"`
	RelationToHeadCode *string `json:"relation_to_head_code"`
	SexCode            *string `json:"sex_code"`
	Age                *int    `json:"age"`
	PurokGimong        *string `json:"purok_gimong"`
	BarangayName       *string `json:"barangay_name"`
	Municipality       *string `json:"municipality"`
	ParishName         *string `json:"parish_name"`
}

// ParticipantDetail bundles everything known about the household a
// participant belongs to.
type ParticipantDetail struct {
	Household        *Household        `json:"household"`
	FamilyMembers    []FamilyMember    `json:"family_members"`
	HealthConditions *HealthConditions `json:"health_conditions"`
	SocioEconomic    *SocioEconomic    `json:"socio_economic"`
	UserRole         string            `json:"userRole"`
	UserParish       string            `json:"userParish"`
}
