package http

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	acusecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/accesscontrol/usecases"
	billusecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/billing/usecases"
	idusecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/identity/usecases"
	subusecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/subscription/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/auth"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/cache"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/config"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/email"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/payment"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/permission"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/ratelimit"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/repository"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/interfaces/http/handlers"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/db"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/services/markdown"
)

// Container wires repositories, use cases and handlers. Everything hangs
// off the single gorm.DB and the shared transaction manager, so use cases
// that span aggregates commit atomically.
type Container struct {
	AuthHandler         *handlers.AuthHandler
	MemberHandler       *handlers.MemberHandler
	RoleHandler         *handlers.RoleHandler
	PlanHandler         *handlers.PlanHandler
	SubscriptionHandler *handlers.SubscriptionHandler
	InvoiceHandler      *handlers.InvoiceHandler
	WebhookHandler      *handlers.WebhookHandler
	AdminHandler        *handlers.AdminHandler

	JWTService       *auth.JWTService
	Enforcer         *permission.Enforcer
	RateLimiter      ratelimit.Limiter
	ResolvePrincipal *acusecases.ResolvePrincipalUseCase
	AuthorizeAction  *acusecases.AuthorizeActionUseCase
	Entitlement      *subusecases.EntitlementService
	Quota            *subusecases.QuotaService

	TrialReminder       *subusecases.TrialReminderUseCase
	ExpireSubscriptions *subusecases.ExpireSubscriptionsUseCase

	Config *config.Config
	Logger logger.Interface
}

// NewContainer builds the full dependency graph. The redis client may be
// nil, in which case the permission cache and rate limiter are disabled.
func NewContainer(cfg *config.Config, database *gorm.DB, redisClient *redis.Client, log logger.Interface) (*Container, error) {
	txManager := db.NewTransactionManager(database)

	// Repositories.
	userRepo := repository.NewUserRepository(database, log)
	tenantRepo := repository.NewTenantRepository(database, log)
	partnerRepo := repository.NewPartnerRepository(database, log)
	membershipRepo := repository.NewMembershipRepository(database, log)
	roleRepo := repository.NewRoleRepository(database, log)
	permissionRepo := repository.NewPermissionRepository(database, log)
	planRepo := repository.NewPlanRepository(database, log)
	planFeatureRepo := repository.NewPlanFeatureRepository(database, log)
	subscriptionRepo := repository.NewSubscriptionRepository(database, log)
	usageRepo := repository.NewSubscriptionUsageRepository(database, log)
	invoiceRepo := repository.NewInvoiceRepository(database, log)
	sequenceRepo := repository.NewInvoiceSequenceRepository(database)
	paymentRepo := repository.NewPaymentRepository(database, log)

	// Infrastructure services.
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	gateway := payment.NewRazorpayGateway(cfg.Billing.GatewayKeyID, cfg.Billing.GatewayKeySecret, log)
	mailer := email.NewBillingMailer(email.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUser,
		Password:    cfg.Email.SMTPPassword,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		Enabled:     cfg.Email.Enabled,
	}, tenantRepo, membershipRepo, userRepo, log)
	markdownSvc := markdown.NewMarkdownService()

	enforcer, err := permission.NewEnforcer(database, log)
	if err != nil {
		return nil, err
	}

	var permCache acusecases.PermissionCache
	var limiter ratelimit.Limiter
	if redisClient != nil {
		limiter = ratelimit.NewRedisLimiter(redisClient)
		if cfg.PermissionCache.Enabled {
			ttl := time.Duration(cfg.PermissionCache.TTLSeconds) * time.Second
			permCache = cache.NewRedisPermissionCache(redisClient, ttl, log)
		}
	}

	// Identity use cases.
	registerTenantUC := idusecases.NewRegisterTenantUseCase(
		userRepo, tenantRepo, partnerRepo, membershipRepo, txManager, cfg.Auth.Password.BcryptCost, log)
	loginUC := idusecases.NewLoginUseCase(userRepo, jwtService, log)
	addMemberUC := idusecases.NewAddMemberUseCase(userRepo, membershipRepo, log)
	removeMemberUC := idusecases.NewRemoveMemberUseCase(membershipRepo, log)
	listMembersUC := idusecases.NewListMembersUseCase(membershipRepo, userRepo)
	createPartnerUC := idusecases.NewCreatePartnerUseCase(partnerRepo, log)

	// Access control use cases.
	resolvePrincipalUC := acusecases.NewResolvePrincipalUseCase(userRepo, membershipRepo, log)
	effectivePermsUC := acusecases.NewEffectivePermissionsUseCase(roleRepo, log)
	authorizeActionUC := acusecases.NewAuthorizeActionUseCase(resolvePrincipalUC, effectivePermsUC, log)
	createRoleUC := acusecases.NewCreateRoleUseCase(roleRepo, permissionRepo, log)
	updateRoleUC := acusecases.NewUpdateRoleUseCase(roleRepo, log)
	deleteRoleUC := acusecases.NewDeleteRoleUseCase(roleRepo, membershipRepo, txManager, log)
	assignRoleUC := acusecases.NewAssignRoleUseCase(membershipRepo, roleRepo, log)
	listRolesUC := acusecases.NewListRolesUseCase(roleRepo, log)
	listPermsUC := acusecases.NewListPermissionsUseCase(permissionRepo)

	if permCache != nil {
		effectivePermsUC.SetCache(permCache)
		updateRoleUC.SetCache(permCache)
		deleteRoleUC.SetCache(permCache)
		assignRoleUC.SetCache(permCache)
	}

	// Subscription use cases.
	entitlementSvc := subusecases.NewEntitlementService(subscriptionRepo, planRepo, log)
	quotaSvc := subusecases.NewQuotaService(entitlementSvc, planFeatureRepo, usageRepo, log)
	createSubscriptionUC := subusecases.NewCreateSubscriptionUseCase(subscriptionRepo, planRepo, tenantRepo, txManager, log)
	transitionUC := subusecases.NewTransitionSubscriptionUseCase(subscriptionRepo, log)
	renewUC := subusecases.NewRenewSubscriptionUseCase(subscriptionRepo, log)
	changePlanUC := subusecases.NewChangePlanUseCase(subscriptionRepo, planRepo, log)
	createPlanUC := subusecases.NewCreatePlanUseCase(planRepo, planFeatureRepo, txManager, log)
	listPlansUC := subusecases.NewListPlansUseCase(planRepo)
	trialReminderUC := subusecases.NewTrialReminderUseCase(subscriptionRepo, mailer, cfg.Billing.TrialReminderDays, log)
	expireSubscriptionsUC := subusecases.NewExpireSubscriptionsUseCase(subscriptionRepo, log)

	// Billing use cases.
	generateInvoiceUC := billusecases.NewGenerateInvoiceUseCase(
		invoiceRepo, sequenceRepo, txManager, cfg.Billing.TaxRatePercent, cfg.Billing.Currency, cfg.Billing.InvoiceRetries, log)
	generateInvoiceUC.SetNotifier(mailer)
	initiatePaymentUC := billusecases.NewInitiatePaymentUseCase(invoiceRepo, paymentRepo, gateway, log)
	refundPaymentUC := billusecases.NewRefundPaymentUseCase(paymentRepo, invoiceRepo, gateway, txManager, log)
	reconcileUC := billusecases.NewReconcileGatewayCallbackUseCase(
		paymentRepo, invoiceRepo, subscriptionRepo, gateway, txManager, log)
	reconcileUC.SetNotifier(mailer)

	return &Container{
		AuthHandler:   handlers.NewAuthHandler(registerTenantUC, loginUC, log),
		MemberHandler: handlers.NewMemberHandler(addMemberUC, removeMemberUC, listMembersUC, assignRoleUC, log),
		RoleHandler: handlers.NewRoleHandler(
			createRoleUC, updateRoleUC, deleteRoleUC, listRolesUC, listPermsUC, effectivePermsUC, log),
		PlanHandler: handlers.NewPlanHandler(createPlanUC, listPlansUC, markdownSvc, log),
		SubscriptionHandler: handlers.NewSubscriptionHandler(
			createSubscriptionUC, transitionUC, renewUC, changePlanUC, entitlementSvc, quotaSvc, log),
		InvoiceHandler: handlers.NewInvoiceHandler(generateInvoiceUC, initiatePaymentUC, refundPaymentUC, invoiceRepo, log),
		WebhookHandler: handlers.NewWebhookHandler(reconcileUC, log),
		AdminHandler:   handlers.NewAdminHandler(createPartnerUC, trialReminderUC, tenantRepo, enforcer, log),

		JWTService:       jwtService,
		Enforcer:         enforcer,
		RateLimiter:      limiter,
		ResolvePrincipal: resolvePrincipalUC,
		AuthorizeAction:  authorizeActionUC,
		Entitlement:      entitlementSvc,
		Quota:            quotaSvc,

		TrialReminder:       trialReminderUC,
		ExpireSubscriptions: expireSubscriptionsUC,

		Config: cfg,
		Logger: log,
	}, nil
}
