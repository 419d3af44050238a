package models

import "gorm.io/datatypes"

// StringArray stores a multi-value code selection as a JSON column.
// Order is preserved; no deduplication is applied.
type StringArray = datatypes.JSONSlice[string]

// Family member roles. Every household carries at most one head and
// one spouse; plain members are unconstrained.
const (
	RoleHead   = "HH Head"
	RoleSpouse = "Spouse"
	RoleMember = "Member"
)
