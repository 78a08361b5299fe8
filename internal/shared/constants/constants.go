package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyUserID     = "user_id"
	ContextKeyTenantID   = "tenant_id"
	ContextKeyPrincipal  = "principal"
	ContextKeyRequestID  = "request_id"
	ContextKeySuperAdmin = "is_super_admin"

	// User status
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusPending  = "pending"

	// Database table names
	TableUsers            = "users"
	TableTenants          = "tenants"
	TablePartners         = "partners"
	TableTenantUsers      = "tenant_users"
	TableRoles            = "roles"
	TablePermissions      = "permissions"
	TablePlans            = "plans"
	TablePlanFeatures     = "plan_features"
	TableSubscriptions    = "subscriptions"
	TableSubscriptionUsage = "subscription_usage"
	TableInvoices         = "invoices"
	TableInvoiceSequences = "invoice_sequences"
	TablePayments         = "payments"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgNotTenantMember     = "not a member of this tenant"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgConflict            = "Resource already exists"
	ErrMsgQuotaExceeded       = "Feature quota exceeded, upgrade your plan"
)
