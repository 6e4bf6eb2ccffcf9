package history

const (
	CodeFieldRequired  = "HISTORY_FIELD_REQUIRED"
	CodeInvalidPayload = "HISTORY_INVALID_REQUEST_PAYLOAD"
	CodeInvalidDate    = "HISTORY_INVALID_DATE"
	CodeRangeInvalid   = "HISTORY_RANGE_INVALID"
	CodeRangeTooLong   = "HISTORY_RANGE_TOO_LONG"
	CodeNotFound       = "HISTORY_NOT_FOUND"
)
