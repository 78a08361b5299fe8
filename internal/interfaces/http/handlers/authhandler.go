package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/identity/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/utils"
)

type AuthHandler struct {
	registerTenantUC *usecases.RegisterTenantUseCase
	loginUC          *usecases.LoginUseCase
	logger           logger.Interface
}

func NewAuthHandler(
	registerTenantUC *usecases.RegisterTenantUseCase,
	loginUC *usecases.LoginUseCase,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerTenantUC: registerTenantUC,
		loginUC:          loginUC,
		logger:           logger,
	}
}

type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Name         string `json:"name" binding:"required"`
	TenantName   string `json:"tenant_name" binding:"required"`
	Environment  string `json:"environment" binding:"omitempty,oneof=production sandbox"`
	ReferralCode string `json:"referral_code"`
}

type RegisterResponse struct {
	User       UserResponse       `json:"user"`
	Tenant     TenantResponse     `json:"tenant"`
	Membership MembershipResponse `json:"membership"`
}

// Register provisions a new tenant with its owner account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid register request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.registerTenantUC.Execute(c.Request.Context(), usecases.RegisterTenantCommand{
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		TenantName:   req.TenantName,
		Environment:  req.Environment,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, RegisterResponse{
		User:       toUserResponse(result.User),
		Tenant:     toTenantResponse(result.Tenant),
		Membership: toMembershipResponse(result.Membership),
	}, "tenant registered")
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Login verifies credentials and issues an access token. The token is
// also set as an HttpOnly cookie for browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", result.Token, maxAge, "/", "", c.Request.TLS != nil, true)

	utils.SuccessResponse(c, http.StatusOK, "login successful", LoginResponse{
		User:      toUserResponse(result.User),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

// Logout clears the access token cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", "", -1, "/", "", c.Request.TLS != nil, true)
	utils.SuccessResponse(c, http.StatusOK, "logged out", nil)
}
