package user

const (
	CodeNotFound         = "USER_NOT_FOUND"
	CodeDeletedNotFound  = "USER_DELETED_NOT_FOUND"
	CodeAlreadyDeleted   = "USER_ALREADY_DELETED"
	CodeAlreadyActive    = "USER_ALREADY_ACTIVE"
	CodePatchEmpty       = "USER_PATCH_EMPTY"
	CodeFieldRequired    = "USER_FIELD_REQUIRED"
	CodeInvalidPayload   = "USER_INVALID_REQUEST_PAYLOAD"
	CodeInvalidEmail     = "USER_INVALID_EMAIL_FORMAT"
	CodeInvalidName      = "USER_INVALID_NAME"
	CodeInvalidPassword  = "USER_INVALID_PASSWORD"
	CodeInvalidRole      = "USER_INVALID_ROLE"
	CodeEmailExists      = "USER_EMAIL_ALREADY_EXISTS"
	CodeOrderInvalid     = "USER_ORDER_INVALID"
	CodePagingIncomplete = "USER_PAGINATION_PARAMETER_INCOMPLETE"
	CodePagingInvalid    = "USER_PAGINATION_PARAMETER_INVALID"
)
