package payment

import (
	"time"

	"github.com/erp/distribution/internal/domain/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InstallmentRequest represents one installment in a create or replace payload
type InstallmentRequest struct {
	Number          int             `json:"number" binding:"required,min=1"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id" binding:"required"`
	DaysToDue       int             `json:"days_to_due" binding:"min=0"`
	Percentage      decimal.Decimal `json:"percentage" binding:"required"`
}

// CreatePaymentTermRequest represents a request to create a payment term
// together with its full installment schedule
type CreatePaymentTermRequest struct {
	Name               string               `json:"name" binding:"required,min=1,max=100"`
	Description        string               `json:"description" binding:"max=500"`
	InterestRate       *decimal.Decimal     `json:"interest_rate"`
	FineRate           *decimal.Decimal     `json:"fine_rate"`
	DiscountPercentage *decimal.Decimal     `json:"discount_percentage"`
	Installments       []InstallmentRequest `json:"installments" binding:"required,min=1,dive"`
}

// UpdatePaymentTermRequest represents a partial update. Only fields
// present in the payload are applied; when Installments is present the
// whole schedule is replaced.
type UpdatePaymentTermRequest struct {
	Name               *string              `json:"name" binding:"omitempty,min=1,max=100"`
	Description        *string              `json:"description" binding:"omitempty,max=500"`
	InterestRate       *decimal.Decimal     `json:"interest_rate"`
	FineRate           *decimal.Decimal     `json:"fine_rate"`
	DiscountPercentage *decimal.Decimal     `json:"discount_percentage"`
	Installments       []InstallmentRequest `json:"installments" binding:"omitempty,min=1,dive"`
}

// PaymentTermListFilter represents filter options for the term list
type PaymentTermListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// InstallmentResponse represents an installment in API responses
type InstallmentResponse struct {
	ID              uuid.UUID       `json:"id"`
	Number          int             `json:"number"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id"`
	DaysToDue       int             `json:"days_to_due"`
	Percentage      decimal.Decimal `json:"percentage"`
	Status          string          `json:"status"`
}

// PaymentTermResponse represents a payment term in API responses
type PaymentTermResponse struct {
	ID                 uuid.UUID             `json:"id"`
	Name               string                `json:"name"`
	Description        string                `json:"description"`
	InterestRate       decimal.Decimal       `json:"interest_rate"`
	FineRate           decimal.Decimal       `json:"fine_rate"`
	DiscountPercentage decimal.Decimal       `json:"discount_percentage"`
	Status             string                `json:"status"`
	Installments       []InstallmentResponse `json:"installments"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
	Version            int                   `json:"version"`
}

// PaymentTermListResponse represents a list item for payment terms
type PaymentTermListResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Status           string    `json:"status"`
	InstallmentCount int       `json:"installment_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToPaymentTermResponse converts a domain payment term to a response DTO.
// Installments are ordered by number, including inactive ones so that
// editors see the full historical schedule.
func ToPaymentTermResponse(term *payment.PaymentTerm) PaymentTermResponse {
	installments := make([]InstallmentResponse, len(term.Installments))
	for i, inst := range term.Installments {
		installments[i] = InstallmentResponse{
			ID:              inst.ID,
			Number:          inst.Number,
			PaymentMethodID: inst.PaymentMethodID,
			DaysToDue:       inst.DaysToDue,
			Percentage:      inst.Percentage,
			Status:          inst.Status.String(),
		}
	}
	return PaymentTermResponse{
		ID:                 term.ID,
		Name:               term.Name,
		Description:        term.Description,
		InterestRate:       term.InterestRate,
		FineRate:           term.FineRate,
		DiscountPercentage: term.DiscountPercentage,
		Status:             term.Status.String(),
		Installments:       installments,
		CreatedAt:          term.CreatedAt,
		UpdatedAt:          term.UpdatedAt,
		Version:            term.Version,
	}
}

// ToPaymentTermListResponses converts domain payment terms to list DTOs
func ToPaymentTermListResponses(terms []payment.PaymentTerm) []PaymentTermListResponse {
	responses := make([]PaymentTermListResponse, len(terms))
	for i, term := range terms {
		responses[i] = PaymentTermListResponse{
			ID:               term.ID,
			Name:             term.Name,
			Description:      term.Description,
			Status:           term.Status.String(),
			InstallmentCount: len(term.Installments),
			CreatedAt:        term.CreatedAt,
		}
	}
	return responses
}

func toInstallmentInputs(requests []InstallmentRequest) []payment.InstallmentInput {
	inputs := make([]payment.InstallmentInput, len(requests))
	for i, req := range requests {
		inputs[i] = payment.InstallmentInput{
			Number:          req.Number,
			PaymentMethodID: req.PaymentMethodID,
			DaysToDue:       req.DaysToDue,
			Percentage:      req.Percentage,
		}
	}
	return inputs
}
