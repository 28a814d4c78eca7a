package handler

import (
	paymentapp "github.com/erp/distribution/internal/application/payment"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentTermHandler handles payment term API endpoints
type PaymentTermHandler struct {
	BaseHandler
	termService *paymentapp.PaymentTermService
}

// NewPaymentTermHandler creates a new PaymentTermHandler
func NewPaymentTermHandler(termService *paymentapp.PaymentTermService) *PaymentTermHandler {
	return &PaymentTermHandler{termService: termService}
}

// RegisterRoutes registers payment term routes on the given group
func (h *PaymentTermHandler) RegisterRoutes(rg *gin.RouterGroup) {
	terms := rg.Group("/payment/terms")
	{
		terms.POST("", h.Create)
		terms.GET("", h.List)
		terms.GET("/:id", h.GetByID)
		terms.PATCH("/:id", h.Update)
		terms.DELETE("/:id", h.Remove)
	}
}

// Create godoc
// @Summary      Create a payment term
// @Description  Create a payment term with its installment schedule. Installment percentages must total 100%.
// @Tags         payment-terms
// @Accept       json
// @Produce      json
// @Param        request body paymentapp.CreatePaymentTermRequest true "Payment term creation request"
// @Success      201 {object} dto.Response{data=paymentapp.PaymentTermResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payment/terms [post]
func (h *PaymentTermHandler) Create(c *gin.Context) {
	var req paymentapp.CreatePaymentTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	term, err := h.termService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, term)
}

// GetByID godoc
// @Summary      Get payment term by ID
// @Description  Retrieve a payment term and its installments ordered by installment number
// @Tags         payment-terms
// @Produce      json
// @Param        id path string true "Payment term ID" format(uuid)
// @Success      200 {object} dto.Response{data=paymentapp.PaymentTermResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payment/terms/{id} [get]
func (h *PaymentTermHandler) GetByID(c *gin.Context) {
	termID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment term ID format")
		return
	}

	term, err := h.termService.GetByID(c.Request.Context(), termID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, term)
}

// List godoc
// @Summary      List payment terms
// @Description  Retrieve a paginated list of payment terms with optional filtering
// @Tags         payment-terms
// @Produce      json
// @Param        search query string false "Search term (name, description)"
// @Param        status query string false "Term status" Enums(ACTIVE, INACTIVE)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" default(name)
// @Param        order_dir query string false "Order direction" Enums(asc, desc) default(asc)
// @Success      200 {object} dto.Response{data=[]paymentapp.PaymentTermListResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payment/terms [get]
func (h *PaymentTermHandler) List(c *gin.Context) {
	var filter paymentapp.PaymentTermListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	terms, total, err := h.termService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	h.SuccessWithMeta(c, terms, total, page, pageSize)
}

// Update godoc
// @Summary      Update a payment term
// @Description  Update term fields. When installments are provided the whole schedule is replaced; a failed replacement keeps the previous schedule.
// @Tags         payment-terms
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment term ID" format(uuid)
// @Param        request body paymentapp.UpdatePaymentTermRequest true "Payment term update request"
// @Success      200 {object} dto.Response{data=paymentapp.PaymentTermResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payment/terms/{id} [patch]
func (h *PaymentTermHandler) Update(c *gin.Context) {
	termID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment term ID format")
		return
	}

	var req paymentapp.UpdatePaymentTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	term, err := h.termService.Update(c.Request.Context(), termID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, term)
}

// Remove godoc
// @Summary      Remove a payment term
// @Description  Hard deletes an unreferenced term; a term referenced by purchase documents is deactivated instead, along with its installments.
// @Tags         payment-terms
// @Produce      json
// @Param        id path string true "Payment term ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payment/terms/{id} [delete]
func (h *PaymentTermHandler) Remove(c *gin.Context) {
	termID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment term ID format")
		return
	}

	if err := h.termService.Remove(c.Request.Context(), termID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
