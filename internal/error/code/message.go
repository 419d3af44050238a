package code

// Error code to message mapping
var codeMessageMap = map[int]string{
	// Generic error codes
	ErrSuccess:      "success",
	ErrUnknown:      "Internal Server Error",
	ErrBind:         "Invalid request data",
	ErrValidation:   "Invalid request data",
	ErrTokenInvalid: "Invalid authentication token",

	// User error codes
	ErrUserNotFound:          "Invalid username or password",
	ErrUserPasswordIncorrect: "Invalid username or password",

	// Participant error codes
	ErrParticipantNotFound: "Participant not found",
	ErrHouseholdNotFound:   "Household not found",
	ErrCrossTenantAccess:   "Access denied: You can only view data from your own parish",

	// Database error codes
	ErrDatabase:         "Database error",
	ErrRecordNotFound:   "Record not found",
	ErrConnectionFailed: "Database connection failed",
}

// Error code to HTTP status mapping
var codeStatusMap = map[int]int{
	// Generic error codes
	ErrSuccess:      StatusOK,
	ErrUnknown:      StatusInternalServerError,
	ErrBind:         StatusBadRequest,
	ErrValidation:   StatusBadRequest,
	ErrTokenInvalid: StatusUnauthorized,

	// User error codes
	ErrUserNotFound:          StatusUnauthorized,
	ErrUserPasswordIncorrect: StatusUnauthorized,

	// Participant error codes
	ErrParticipantNotFound: StatusNotFound,
	ErrHouseholdNotFound:   StatusNotFound,
	ErrCrossTenantAccess:   StatusForbidden,

	// Database error codes
	ErrDatabase:         StatusInternalServerError,
	ErrRecordNotFound:   StatusNotFound,
	ErrConnectionFailed: StatusInternalServerError,
}

// GetMessage returns the message for an error code
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "Internal Server Error"
}

// GetStatus returns the HTTP status for an error code
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
