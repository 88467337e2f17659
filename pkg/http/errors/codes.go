package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"

	// Resource errors
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Question bank errors
	ErrCodeUnprocessable     = "unprocessable"
	ErrCodeQuestionNotFound  = "question_not_found"
	ErrCodeInvalidQuestionID = "invalid_question_id"
	ErrCodeInvalidCategoryID = "invalid_category_id"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
)

// Messages shown to clients, one per HTTP status the API emits.
const (
	MsgBadRequest         = "Bad request"
	MsgNotFound           = "Resource not found"
	MsgMethodNotAllowed   = "Method not allowed"
	MsgUnprocessable      = "Unprocessable"
	MsgInternal           = "Something went wrong"
	MsgServiceUnavailable = "Service unavailable"
)
