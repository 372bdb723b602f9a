package constants

// Context keys
const (
	ContextKeyUser = "current_user"
)

// Token settings
const (
	TokenType = "bearer"
)

// Pagination settings
const (
	DefaultPage     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200
)
