package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Editor save rules ─────────────────────────────────────────────
	ErrEmptyTitle       ErrCode = "EMPTY_TITLE"
	ErrNoDaySelected    ErrCode = "NO_DAY_SELECTED"
	ErrTimeOrderInvalid ErrCode = "TIME_ORDER_INVALID"

	// ─── Transfer ──────────────────────────────────────────────────────
	ErrMalformedImport       ErrCode = "MALFORMED_IMPORT"
	ErrMissingRenderTarget   ErrCode = "MISSING_RENDER_TARGET"
	ErrUnresolvedColorFormat ErrCode = "UNRESOLVED_COLOR_FORMAT"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound      ErrCode = "NOT_FOUND"
	ErrDraftNotFound ErrCode = "DRAFT_NOT_FOUND"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	// ─── Editor save rules ─────────────────────────────────────────────
	case ErrEmptyTitle:
		return "Course title is required."
	case ErrNoDaySelected:
		return "Select at least one day."
	case ErrTimeOrderInvalid:
		return "End time must be after start time."

	// ─── Transfer ──────────────────────────────────────────────────────
	case ErrMalformedImport:
		return "Invalid JSON file. Please upload a valid schedule file."
	case ErrMissingRenderTarget:
		return "Nothing to render. The schedule grid is unavailable."
	case ErrUnresolvedColorFormat:
		return "A course color could not be parsed. Export aborted."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrDraftNotFound:
		return "The editor draft does not exist or was already closed."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
