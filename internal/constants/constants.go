package constants

// Session
const (
	SessionCookieName = "field_session"
	ContextKeyUserID  = "user_id"
	ContextKeyRole    = "user_role"
)

// Auth
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
