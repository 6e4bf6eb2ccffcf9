package device

const (
	CodeNotFound         = "DEVICE_NOT_FOUND"
	CodeDeletedNotFound  = "DEVICE_DELETED_NOT_FOUND"
	CodeAlreadyDeleted   = "DEVICE_ALREADY_DELETED"
	CodeAlreadyActive    = "DEVICE_ALREADY_ACTIVE"
	CodeUpdateEmpty      = "DEVICE_UPDATE_EMPTY"
	CodeAlreadyExists    = "DEVICE_ALREADY_EXISTS"
	CodeFieldRequired    = "DEVICE_FIELD_REQUIRED"
	CodeInvalidPayload   = "DEVICE_INVALID_REQUEST_PAYLOAD"
	CodeInvalidStatus    = "DEVICE_INVALID_STATUS"
	CodeClusterInactive  = "DEVICE_CLUSTER_INACTIVE"
	CodeClusterNotFound  = "CLUSTER_NOT_FOUND"
	CodeOrderInvalid     = "DEVICE_ORDER_INVALID"
	CodePagingIncomplete = "DEVICE_PAGINATION_PARAMETER_INCOMPLETE"
	CodePagingInvalid    = "DEVICE_PAGINATION_PARAMETER_INVALID"
)
