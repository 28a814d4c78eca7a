package payment

import (
	"context"
	"sort"

	"github.com/erp/distribution/internal/domain/payment"
	"github.com/erp/distribution/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentTermService handles payment term business operations
type PaymentTermService struct {
	termRepo     payment.PaymentTermRepository
	usageChecker payment.UsageChecker
}

// NewPaymentTermService creates a new PaymentTermService
func NewPaymentTermService(termRepo payment.PaymentTermRepository, usageChecker payment.UsageChecker) *PaymentTermService {
	return &PaymentTermService{
		termRepo:     termRepo,
		usageChecker: usageChecker,
	}
}

// Create creates a payment term with its installment schedule in one
// transaction. The allocation invariant is checked before any
// persistence work starts.
func (s *PaymentTermService) Create(ctx context.Context, req CreatePaymentTermRequest) (*PaymentTermResponse, error) {
	// Check if name already exists
	exists, err := s.termRepo.ExistsByName(ctx, req.Name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Payment term with this name already exists")
	}

	term, err := payment.NewPaymentTerm(
		req.Name,
		req.Description,
		rateOrZero(req.InterestRate),
		rateOrZero(req.FineRate),
		rateOrZero(req.DiscountPercentage),
		toInstallmentInputs(req.Installments),
	)
	if err != nil {
		return nil, err
	}

	if err := s.termRepo.Save(ctx, term); err != nil {
		return nil, err
	}

	response := toSortedResponse(term)
	return &response, nil
}

// GetByID retrieves a payment term by ID, installments ordered by number.
// Inactive installments are included so editors see the full schedule.
func (s *PaymentTermService) GetByID(ctx context.Context, termID uuid.UUID) (*PaymentTermResponse, error) {
	term, err := s.termRepo.FindByID(ctx, termID)
	if err != nil {
		return nil, err
	}

	response := toSortedResponse(term)
	return &response, nil
}

// List retrieves payment terms with filtering and pagination
func (s *PaymentTermService) List(ctx context.Context, filter PaymentTermListFilter) ([]PaymentTermListResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	terms, err := s.termRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.termRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToPaymentTermListResponses(terms), total, nil
}

// Update applies a partial update to a payment term. When installments
// are supplied the whole schedule is replaced; old installment rows are
// discarded and the new set inserted in the same transaction.
func (s *PaymentTermService) Update(ctx context.Context, termID uuid.UUID, req UpdatePaymentTermRequest) (*PaymentTermResponse, error) {
	term, err := s.termRepo.FindByID(ctx, termID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != term.Name {
		exists, err := s.termRepo.ExistsByName(ctx, *req.Name, &termID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Payment term with this name already exists")
		}
		if err := term.UpdateName(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.Description != nil {
		term.UpdateDescription(*req.Description)
	}

	if req.InterestRate != nil || req.FineRate != nil || req.DiscountPercentage != nil {
		interestRate := term.InterestRate
		fineRate := term.FineRate
		discount := term.DiscountPercentage
		if req.InterestRate != nil {
			interestRate = *req.InterestRate
		}
		if req.FineRate != nil {
			fineRate = *req.FineRate
		}
		if req.DiscountPercentage != nil {
			discount = *req.DiscountPercentage
		}
		if err := term.UpdateRates(interestRate, fineRate, discount); err != nil {
			return nil, err
		}
	}

	if req.Installments != nil {
		if err := term.ReplaceInstallments(toInstallmentInputs(req.Installments)); err != nil {
			return nil, err
		}
	}

	term.IncrementVersion()
	if err := s.termRepo.Update(ctx, term); err != nil {
		return nil, err
	}

	response := toSortedResponse(term)
	return &response, nil
}

// Remove deletes a payment term. A term referenced by any document is
// deactivated together with its installments instead of being deleted,
// preserving referential integrity for issued documents.
func (s *PaymentTermService) Remove(ctx context.Context, termID uuid.UUID) error {
	term, err := s.termRepo.FindByID(ctx, termID)
	if err != nil {
		return err
	}

	referenced, err := s.usageChecker.IsReferenced(ctx, termID)
	if err != nil {
		return err
	}

	if referenced {
		if !term.IsActive() {
			// Already deactivated, nothing left to do
			return nil
		}
		if err := term.Deactivate(); err != nil {
			return err
		}
		return s.termRepo.Update(ctx, term)
	}

	if err := s.termRepo.Delete(ctx, term.ID); err != nil {
		return err
	}
	term.AddDomainEvent(payment.NewPaymentTermDeletedEvent(term))
	return nil
}

func rateOrZero(rate *decimal.Decimal) decimal.Decimal {
	if rate == nil {
		return decimal.Zero
	}
	return *rate
}

func toSortedResponse(term *payment.PaymentTerm) PaymentTermResponse {
	sort.SliceStable(term.Installments, func(a, b int) bool {
		return term.Installments[a].Number < term.Installments[b].Number
	})
	return ToPaymentTermResponse(term)
}
