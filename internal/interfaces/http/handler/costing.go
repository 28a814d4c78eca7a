package handler

import (
	purchasingapp "github.com/erp/distribution/internal/application/purchasing"
	"github.com/gin-gonic/gin"
)

// CostingHandler handles purchase cost apportionment endpoints
type CostingHandler struct {
	BaseHandler
	costingService *purchasingapp.CostingService
}

// NewCostingHandler creates a new CostingHandler
func NewCostingHandler(costingService *purchasingapp.CostingService) *CostingHandler {
	return &CostingHandler{costingService: costingService}
}

// RegisterRoutes registers purchasing routes on the given group
func (h *CostingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchasing := rg.Group("/purchasing")
	{
		purchasing.POST("/cost-allocations", h.Allocate)
	}
}

// Allocate godoc
// @Summary      Apportion ancillary costs across line items
// @Description  Distributes freight, insurance and other expenses proportionally to each item's share of the merchandise subtotal. Recomputes every derived value from scratch; the call has no side effects.
// @Tags         purchasing
// @Accept       json
// @Produce      json
// @Param        request body purchasingapp.AllocateCostsRequest true "Line items and ancillary costs"
// @Success      200 {object} dto.Response{data=purchasingapp.AllocateCostsResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /purchasing/cost-allocations [post]
func (h *CostingHandler) Allocate(c *gin.Context) {
	var req purchasingapp.AllocateCostsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.costingService.Allocate(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
