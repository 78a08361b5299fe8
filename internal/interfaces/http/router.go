package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/permission"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/ratelimit"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/interfaces/http/middleware"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/version"

	_ "github.com/NiveshSarthi/Synditech-RealNext-sub001/docs"
)

// Router mounts the API surface on a gin engine.
type Router struct {
	engine    *gin.Engine
	container *Container
}

func NewRouter(container *Container) *Router {
	registerBindingValidations()

	engine := gin.New()

	engine.Use(middleware.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(container.Logger))
	engine.Use(middleware.CORS(container.Config.Server.AllowedOrigins))
	engine.Use(middleware.SecurityHeaders())

	r := &Router{engine: engine, container: container}
	r.registerRoutes()
	return r
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) registerRoutes() {
	c := r.container
	log := c.Logger

	r.engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Version})
	})
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api/v1")

	if c.RateLimiter != nil {
		api.Use(middleware.RateLimit(c.RateLimiter, ratelimit.Config{
			RequestsPerMinute: 120,
			RequestsPerHour:   3000,
		}, log))
	}

	// Public surface.
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", c.AuthHandler.Register)
		authGroup.POST("/login", c.AuthHandler.Login)
		authGroup.POST("/logout", c.AuthHandler.Logout)
	}
	api.GET("/plans", c.PlanHandler.ListPublic)
	api.POST("/webhooks/payment", c.WebhookHandler.PaymentCallback)

	// Authenticated, tenant-scoped surface. Tenant scope comes from the
	// X-Tenant-ID header and is verified against the membership table on
	// every request.
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(c.JWTService, log))

	authed.GET("/permissions", c.RoleHandler.ListPermissions)

	tenant := authed.Group("")
	tenant.Use(middleware.ResolveTenant(c.ResolvePrincipal, log))
	{
		tenant.GET("/me/permissions", c.RoleHandler.MyPermissions)

		members := tenant.Group("/members")
		{
			members.GET("", c.MemberHandler.List)
			// Adding a member consumes one seat from the plan quota.
			members.POST("",
				middleware.RequirePermission(c.AuthorizeAction, "members.manage", log),
				middleware.RequireEntitlement(c.Entitlement, log),
				middleware.ConsumeQuota(c.Quota, "seats", log),
				c.MemberHandler.Add)
			members.DELETE("/:user_id",
				middleware.RequirePermission(c.AuthorizeAction, "members.manage", log),
				c.MemberHandler.Remove)
			members.PUT("/:user_id/role",
				middleware.RequirePermission(c.AuthorizeAction, "roles.manage", log),
				c.MemberHandler.AssignRole)
		}

		roles := tenant.Group("/roles")
		{
			roles.GET("", c.RoleHandler.List)
			roles.POST("",
				middleware.RequirePermission(c.AuthorizeAction, "roles.manage", log),
				c.RoleHandler.Create)
			roles.PUT("/:role_id",
				middleware.RequirePermission(c.AuthorizeAction, "roles.manage", log),
				c.RoleHandler.Update)
			roles.DELETE("/:role_id",
				middleware.RequirePermission(c.AuthorizeAction, "roles.manage", log),
				c.RoleHandler.Delete)
		}

		subscription := tenant.Group("/subscription")
		{
			subscription.GET("", c.SubscriptionHandler.Current)
			subscription.POST("",
				middleware.RequirePermission(c.AuthorizeAction, "billing.manage", log),
				c.SubscriptionHandler.Create)
			subscription.POST("/activate",
				middleware.RequirePermission(c.AuthorizeAction, "billing.manage", log),
				c.SubscriptionHandler.Activate)
			subscription.POST("/cancel",
				middleware.RequirePermission(c.AuthorizeAction, "billing.manage", log),
				c.SubscriptionHandler.Cancel)
			subscription.POST("/renew",
				middleware.RequirePermission(c.AuthorizeAction, "billing.manage", log),
				c.SubscriptionHandler.Renew)
			subscription.POST("/change-plan",
				middleware.RequirePermission(c.AuthorizeAction, "billing.manage", log),
				c.SubscriptionHandler.ChangePlan)
		}

		usage := tenant.Group("/usage")
		usage.Use(middleware.RequireEntitlement(c.Entitlement, log))
		{
			usage.POST("/consume", c.SubscriptionHandler.ConsumeQuota)
			usage.POST("/release", c.SubscriptionHandler.ReleaseQuota)
		}

		invoices := tenant.Group("/invoices")
		invoices.Use(middleware.RequireAnyPermission(c.AuthorizeAction, []string{"billing.read", "billing.manage"}, log))
		{
			invoices.GET("", c.InvoiceHandler.List)
			invoices.GET("/:invoice_id", c.InvoiceHandler.Get)
			invoices.POST("/:invoice_id/payments",
				middleware.RequirePermission(c.AuthorizeAction, "billing.manage", log),
				c.InvoiceHandler.InitiatePayment)
		}
	}

	// Platform-operator surface. No tenant scope; access is governed by
	// the casbin policy set, with super admins passing outright.
	admin := authed.Group("/admin")
	{
		admin.GET("/plans",
			middleware.RequireOperator(c.Enforcer, permission.ResourcePlans, permission.ActionRead, log),
			c.PlanHandler.ListAll)
		admin.POST("/plans",
			middleware.RequireOperator(c.Enforcer, permission.ResourcePlans, permission.ActionWrite, log),
			c.PlanHandler.Create)

		admin.POST("/partners",
			middleware.RequireOperator(c.Enforcer, permission.ResourcePartners, permission.ActionWrite, log),
			c.AdminHandler.CreatePartner)

		admin.GET("/tenants",
			middleware.RequireOperator(c.Enforcer, permission.ResourceTenants, permission.ActionRead, log),
			c.AdminHandler.ListTenants)
		admin.POST("/tenants/:tenant_id/suspend",
			middleware.RequireOperator(c.Enforcer, permission.ResourceTenants, permission.ActionWrite, log),
			c.AdminHandler.SuspendTenant)
		admin.POST("/tenants/:tenant_id/reactivate",
			middleware.RequireOperator(c.Enforcer, permission.ResourceTenants, permission.ActionWrite, log),
			c.AdminHandler.ReactivateTenant)

		admin.POST("/subscriptions/:tenant_id/suspend",
			middleware.RequireOperator(c.Enforcer, permission.ResourceTenants, permission.ActionWrite, log),
			r.adminSuspendSubscription)

		admin.POST("/invoices",
			middleware.RequireOperator(c.Enforcer, permission.ResourceTenants, permission.ActionWrite, log),
			c.InvoiceHandler.Generate)
		admin.POST("/payments/refund",
			middleware.RequireOperator(c.Enforcer, permission.ResourceTenants, permission.ActionWrite, log),
			c.InvoiceHandler.Refund)

		admin.POST("/operators", middleware.RequireSuperAdmin(log), c.AdminHandler.GrantOperator)
		admin.DELETE("/operators", middleware.RequireSuperAdmin(log), c.AdminHandler.RevokeOperator)

		admin.POST("/tasks/trial-reminders",
			middleware.RequireOperator(c.Enforcer, permission.ResourceTenants, permission.ActionWrite, log),
			c.AdminHandler.RunTrialReminders)
	}
}

// adminSuspendSubscription suspends a tenant's subscription without the
// tenant-scope middleware, for dunning and abuse handling.
func (r *Router) adminSuspendSubscription(c *gin.Context) {
	r.container.SubscriptionHandler.SuspendForTenant(c)
}
