package cluster

const (
	CodeNotFound         = "CLUSTER_NOT_FOUND"
	CodeDeletedNotFound  = "CLUSTER_DELETED_NOT_FOUND"
	CodeAlreadyDeleted   = "CLUSTER_ALREADY_DELETED"
	CodeAlreadyActive    = "CLUSTER_ALREADY_ACTIVE"
	CodeUpdateEmpty      = "CLUSTER_UPDATE_EMPTY"
	CodeAlreadyExists    = "CLUSTER_ALREADY_EXISTS"
	CodeFieldRequired    = "CLUSTER_FIELD_REQUIRED"
	CodeInvalidPayload   = "CLUSTER_INVALID_REQUEST_PAYLOAD"
	CodeOrderInvalid     = "CLUSTER_ORDER_INVALID"
	CodePagingIncomplete = "CLUSTER_PAGINATION_PARAMETER_INCOMPLETE"
	CodePagingInvalid    = "CLUSTER_PAGINATION_PARAMETER_INVALID"
)
