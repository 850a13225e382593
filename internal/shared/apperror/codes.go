package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput        = "INVALID_INPUT"
	CodeMalformedPeriod     = "MALFORMED_PERIOD"
	CodeMissingField        = "MISSING_FIELD"
	CodeOverlapping         = "OVERLAPPING_APPLICATION"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeInvalidState        = "INVALID_STATE"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
