package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/subscription/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/services/markdown"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/utils"
)

type PlanHandler struct {
	createPlanUC *usecases.CreatePlanUseCase
	listPlansUC  *usecases.ListPlansUseCase
	markdown     markdown.MarkdownService
	logger       logger.Interface
}

func NewPlanHandler(
	createPlanUC *usecases.CreatePlanUseCase,
	listPlansUC *usecases.ListPlansUseCase,
	markdownSvc markdown.MarkdownService,
	logger logger.Interface,
) *PlanHandler {
	return &PlanHandler{
		createPlanUC: createPlanUC,
		listPlansUC:  listPlansUC,
		markdown:     markdownSvc,
		logger:       logger,
	}
}

// ListPublic returns the public pricing catalog. Plan descriptions are
// authored in markdown and rendered to sanitized HTML for the pricing
// page.
func (h *PlanHandler) ListPublic(c *gin.Context) {
	plans, err := h.listPlansUC.Execute(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]PlanResponse, 0, len(plans))
	for _, plan := range plans {
		resp := toPlanResponse(plan)
		if resp.Description != "" {
			html, err := h.markdown.ToHTMLSanitized(resp.Description)
			if err != nil {
				h.logger.Warnw("failed to render plan description", "error", err, "plan_code", resp.Code)
			} else {
				resp.DescriptionHTML = html
			}
		}
		items = append(items, resp)
	}
	utils.SuccessResponse(c, http.StatusOK, "", items)
}

// ListAll returns every plan, including unlisted and inactive ones.
// Operator surface.
func (h *PlanHandler) ListAll(c *gin.Context) {
	plans, err := h.listPlansUC.Execute(c.Request.Context(), false)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]PlanResponse, 0, len(plans))
	for _, plan := range plans {
		items = append(items, toPlanResponse(plan))
	}
	utils.SuccessResponse(c, http.StatusOK, "", items)
}

type PlanFeatureRequest struct {
	FeatureCode string           `json:"feature_code" binding:"required"`
	Enabled     bool             `json:"enabled"`
	Limits      map[string]int64 `json:"limits"`
}

type CreatePlanRequest struct {
	Code         string               `json:"code" binding:"required,min=2,max=32"`
	Name         string               `json:"name" binding:"required"`
	Description  string               `json:"description"`
	PriceMonthly int64                `json:"price_monthly" binding:"min=0"`
	PriceYearly  int64                `json:"price_yearly" binding:"min=0"`
	TrialDays    int                  `json:"trial_days" binding:"min=0"`
	Limits       map[string]int64     `json:"limits"`
	Features     []PlanFeatureRequest `json:"features"`
}

// Create adds a plan to the catalog. Operator surface.
func (h *PlanHandler) Create(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid create plan request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	features := make([]usecases.PlanFeatureSpec, 0, len(req.Features))
	for _, f := range req.Features {
		features = append(features, usecases.PlanFeatureSpec{
			FeatureCode: f.FeatureCode,
			Enabled:     f.Enabled,
			Limits:      f.Limits,
		})
	}

	plan, err := h.createPlanUC.Execute(c.Request.Context(), usecases.CreatePlanCommand{
		Code:         req.Code,
		Name:         req.Name,
		Description:  req.Description,
		PriceMonthly: req.PriceMonthly,
		PriceYearly:  req.PriceYearly,
		TrialDays:    req.TrialDays,
		Limits:       req.Limits,
		Features:     features,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, toPlanResponse(plan), "plan created")
}
