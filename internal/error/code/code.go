package code

// HTTP status codes.
const (
	// StatusOK - 200: success.
	StatusOK = 200
	// StatusBadRequest - 400: malformed request.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: bad credentials.
	StatusUnauthorized = 401
	// StatusForbidden - 403: access denied.
	StatusForbidden = 403
	// StatusNotFound - 404: resource missing.
	StatusNotFound = 404
	// StatusInternalServerError - 500: server fault.
	StatusInternalServerError = 500
)

// Generic error codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unknown error.
	ErrUnknown
	// ErrBind - 400: request body binding error.
	ErrBind
	// ErrValidation - 400: request validation error.
	ErrValidation
	// ErrTokenInvalid - 401: invalid token.
	ErrTokenInvalid
)

// User error codes (101xxx).
const (
	// ErrUserNotFound - 404: user does not exist.
	ErrUserNotFound int = iota + 101000
	// ErrUserPasswordIncorrect - 401: wrong username or password.
	ErrUserPasswordIncorrect
)

// Participant error codes (102xxx).
const (
	// ErrParticipantNotFound - 404: family member does not exist.
	ErrParticipantNotFound int = iota + 102000
	// ErrHouseholdNotFound - 404: household does not exist.
	ErrHouseholdNotFound
	// ErrCrossTenantAccess - 403: record belongs to another parish.
	ErrCrossTenantAccess
)

// Database error codes (105xxx).
const (
	// ErrDatabase - 500: database error.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: record does not exist.
	ErrRecordNotFound
	// ErrConnectionFailed - 500: backend connection failed.
	ErrConnectionFailed
)
