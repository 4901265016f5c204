package utils

// Headers set by the gateway after the bearer token has been verified
const (
	HeaderUserID   = "x-user-id"
	HeaderUserRole = "x-user-roles"
)

const (
	PASSWORD_MIN_LENGTH = 12
	TOKEN_ISSUER        = "ms-auth"
)

// Order history actions
const (
	ACTION_CREATE_ORDER  = "create order"
	ACTION_UPDATE_ORDER  = "update order"
	ACTION_UPDATE_STATUS = "update status"
	ACTION_ASSIGN_ORDER  = "assign delivery person"
)

// Order event types
const (
	EVENT_ORDER_CREATED        = "order.created"
	EVENT_ORDER_STATUS_CHANGED = "order.status_changed"
	EVENT_ORDER_ASSIGNED       = "order.assigned"
)

const (
	MESS_NO_ROUTE_AVAILABLE = "no route available"
	MESS_INVALID_COORDINATE = "invalid coordinate"
	MESS_ORDER_CHANGED      = "order was changed by another request, reload and retry"
)

const TIME_FORMAT_FOR_EXPORT = "2006-01-02 15:04"
