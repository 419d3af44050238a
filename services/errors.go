package services

import "errors"

// Sentinel errors shared by the services. Controllers translate these
// into HTTP statuses; anything else is treated as a persistence fault.
var (
	ErrInvalidSubmission   = errors.New("invalid request data")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrHouseholdNotFound   = errors.New("household not found")
	ErrAccessDenied        = errors.New("access denied: you can only view data from your own parish")
)
