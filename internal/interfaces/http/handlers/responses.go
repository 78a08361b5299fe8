package handlers

import (
	"time"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/identity/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/accesscontrol"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
)

type UserResponse struct {
	ID        uint      `json:"id"`
	SID       string    `json:"sid"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID(),
		SID:       u.SID(),
		Email:     u.Email(),
		Name:      u.Name(),
		CreatedAt: u.CreatedAt(),
	}
}

type TenantResponse struct {
	ID          uint      `json:"id"`
	SID         string    `json:"sid"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	Environment string    `json:"environment"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTenantResponse(t *identity.Tenant) TenantResponse {
	return TenantResponse{
		ID:          t.ID(),
		SID:         t.SID(),
		Name:        t.Name(),
		Status:      string(t.Status()),
		Environment: t.Environment(),
		CreatedAt:   t.CreatedAt(),
	}
}

type MemberResponse struct {
	UserID     uint      `json:"user_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	LegacyRole string    `json:"legacy_role"`
	RoleID     *uint     `json:"role_id,omitempty"`
	IsOwner    bool      `json:"is_owner"`
	JoinedAt   time.Time `json:"joined_at"`
}

func toMemberResponse(m usecases.Member) MemberResponse {
	resp := MemberResponse{
		UserID:     m.Membership.UserID(),
		LegacyRole: string(m.Membership.LegacyRole()),
		RoleID:     m.Membership.RoleID(),
		IsOwner:    m.Membership.IsOwner(),
		JoinedAt:   m.Membership.CreatedAt(),
	}
	if m.User != nil {
		resp.Email = m.User.Email()
		resp.Name = m.User.Name()
	}
	return resp
}

type MembershipResponse struct {
	UserID     uint   `json:"user_id"`
	TenantID   uint   `json:"tenant_id"`
	LegacyRole string `json:"legacy_role"`
	RoleID     *uint  `json:"role_id,omitempty"`
	IsOwner    bool   `json:"is_owner"`
}

func toMembershipResponse(m *identity.Membership) MembershipResponse {
	return MembershipResponse{
		UserID:     m.UserID(),
		TenantID:   m.TenantID(),
		LegacyRole: string(m.LegacyRole()),
		RoleID:     m.RoleID(),
		IsOwner:    m.IsOwner(),
	}
}

type RoleResponse struct {
	ID          uint      `json:"id"`
	SID         string    `json:"sid"`
	Code        string    `json:"code,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsSystem    bool      `json:"is_system"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}

func toRoleResponse(r *accesscontrol.Role) RoleResponse {
	return RoleResponse{
		ID:          r.ID(),
		SID:         r.SID(),
		Code:        r.Code(),
		Name:        r.Name(),
		Description: r.Description(),
		IsSystem:    r.IsSystem(),
		Permissions: r.Permissions(),
		CreatedAt:   r.CreatedAt(),
	}
}

type PermissionResponse struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

func toPermissionResponse(p *accesscontrol.Permission) PermissionResponse {
	return PermissionResponse{
		Code:     p.Code(),
		Name:     p.Name(),
		Category: p.Category(),
	}
}

type PlanResponse struct {
	ID              uint             `json:"id"`
	SID             string           `json:"sid"`
	Code            string           `json:"code"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	DescriptionHTML string           `json:"description_html,omitempty"`
	PriceMonthly    int64            `json:"price_monthly"`
	PriceYearly     int64            `json:"price_yearly"`
	TrialDays       int              `json:"trial_days"`
	IsActive        bool             `json:"is_active"`
	IsPublic        bool             `json:"is_public"`
	Limits          map[string]int64 `json:"limits"`
}

func toPlanResponse(p *subscription.Plan) PlanResponse {
	return PlanResponse{
		ID:           p.ID(),
		SID:          p.SID(),
		Code:         p.Code(),
		Name:         p.Name(),
		Description:  p.Description(),
		PriceMonthly: p.PriceMonthly(),
		PriceYearly:  p.PriceYearly(),
		TrialDays:    p.TrialDays(),
		IsActive:     p.IsActive(),
		IsPublic:     p.IsPublic(),
		Limits:       p.Limits(),
	}
}

type SubscriptionResponse struct {
	ID                 uint       `json:"id"`
	SID                string     `json:"sid"`
	TenantID           uint       `json:"tenant_id"`
	PlanID             uint       `json:"plan_id"`
	Status             string     `json:"status"`
	BillingCycle       string     `json:"billing_cycle"`
	CurrentPeriodStart time.Time  `json:"current_period_start"`
	CurrentPeriodEnd   time.Time  `json:"current_period_end"`
	TrialEndsAt        *time.Time `json:"trial_ends_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancelReason       *string    `json:"cancel_reason,omitempty"`
}

func toSubscriptionResponse(s *subscription.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:                 s.ID(),
		SID:                s.SID(),
		TenantID:           s.TenantID(),
		PlanID:             s.PlanID(),
		Status:             s.Status().String(),
		BillingCycle:       s.BillingCycle().String(),
		CurrentPeriodStart: s.CurrentPeriodStart(),
		CurrentPeriodEnd:   s.CurrentPeriodEnd(),
		TrialEndsAt:        s.TrialEndsAt(),
		CancelledAt:        s.CancelledAt(),
		CancelReason:       s.CancelReason(),
	}
}

type LineItemResponse struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Quantity    int    `json:"quantity"`
	Total       int64  `json:"total"`
}

type InvoiceResponse struct {
	ID            uint               `json:"id"`
	SID           string             `json:"sid"`
	InvoiceNumber string             `json:"invoice_number"`
	TenantID      uint               `json:"tenant_id"`
	Amount        int64              `json:"amount"`
	TaxAmount     int64              `json:"tax_amount"`
	TotalAmount   int64              `json:"total_amount"`
	Currency      string             `json:"currency"`
	Status        string             `json:"status"`
	LineItems     []LineItemResponse `json:"line_items"`
	PeriodStart   time.Time          `json:"period_start"`
	PeriodEnd     time.Time          `json:"period_end"`
	PaidAt        *time.Time         `json:"paid_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

func toInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	items := make([]LineItemResponse, 0, len(inv.LineItems()))
	for _, li := range inv.LineItems() {
		items = append(items, LineItemResponse{
			Description: li.Description(),
			Amount:      li.Amount(),
			Quantity:    li.Quantity(),
			Total:       li.Total(),
		})
	}
	return InvoiceResponse{
		ID:            inv.ID(),
		SID:           inv.SID(),
		InvoiceNumber: inv.InvoiceNumber(),
		TenantID:      inv.TenantID(),
		Amount:        inv.Amount(),
		TaxAmount:     inv.TaxAmount(),
		TotalAmount:   inv.TotalAmount(),
		Currency:      inv.Currency(),
		Status:        inv.Status().String(),
		LineItems:     items,
		PeriodStart:   inv.PeriodStart(),
		PeriodEnd:     inv.PeriodEnd(),
		PaidAt:        inv.PaidAt(),
		CreatedAt:     inv.CreatedAt(),
	}
}

type PaymentResponse struct {
	ID               uint       `json:"id"`
	SID              string     `json:"sid"`
	InvoiceID        uint       `json:"invoice_id"`
	AmountMinor      int64      `json:"amount_minor"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"`
	Method           *string    `json:"method,omitempty"`
	GatewayOrderID   *string    `json:"gateway_order_id,omitempty"`
	GatewayPaymentID *string    `json:"gateway_payment_id,omitempty"`
	RefundAmount     int64      `json:"refund_amount,omitempty"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func toPaymentResponse(p *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               p.ID(),
		SID:              p.SID(),
		InvoiceID:        p.InvoiceID(),
		AmountMinor:      p.Amount().AmountMinor(),
		Currency:         p.Amount().Currency(),
		Status:           p.Status().String(),
		Method:           p.Method(),
		GatewayOrderID:   p.GatewayOrderID(),
		GatewayPaymentID: p.GatewayPaymentID(),
		RefundAmount:     p.RefundAmount(),
		PaidAt:           p.PaidAt(),
		CreatedAt:        p.CreatedAt(),
	}
}

type PartnerResponse struct {
	ID             uint    `json:"id"`
	SID            string  `json:"sid"`
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	ReferralCode   string  `json:"referral_code"`
	CommissionRate float64 `json:"commission_rate"`
	Status         string  `json:"status"`
}

func toPartnerResponse(p *identity.Partner) PartnerResponse {
	return PartnerResponse{
		ID:             p.ID(),
		SID:            p.SID(),
		Name:           p.Name(),
		Slug:           p.Slug(),
		ReferralCode:   p.ReferralCode(),
		CommissionRate: p.CommissionRate(),
		Status:         string(p.Status()),
	}
}
