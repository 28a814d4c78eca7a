package purchasing

import (
	"context"

	"github.com/erp/distribution/internal/domain/purchasing"
	"github.com/erp/distribution/internal/domain/shared"
	"github.com/erp/distribution/internal/domain/shared/valueobject"
)

// CostingService apportions ancillary purchase costs across line items.
// It is stateless; every call recomputes the allocation from scratch.
type CostingService struct {
	allocator *purchasing.CostAllocator
}

// NewCostingService creates a new CostingService
func NewCostingService() *CostingService {
	return &CostingService{
		allocator: purchasing.NewCostAllocator(),
	}
}

// Allocate validates the submitted line items and returns them with
// allocated and landed costs populated
func (s *CostingService) Allocate(_ context.Context, req AllocateCostsRequest) (*AllocateCostsResponse, error) {
	if req.Freight.IsNegative() || req.Insurance.IsNegative() || req.OtherExpenses.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Ancillary costs cannot be negative")
	}

	items := make([]purchasing.LineItem, 0, len(req.Items))
	for _, lineReq := range req.Items {
		item, err := purchasing.NewLineItem(
			lineReq.Code,
			lineReq.ProductRef,
			lineReq.Unit,
			lineReq.Quantity,
			lineReq.UnitPrice,
			lineReq.UnitDiscount,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	costs := purchasing.AncillaryCosts{
		Freight:       req.Freight,
		Insurance:     req.Insurance,
		OtherExpenses: req.OtherExpenses,
	}

	allocated := s.allocator.Allocate(items, costs)

	subtotal := valueobject.NewMoneyBRL(s.allocator.Subtotal(allocated))
	ancillary := valueobject.NewMoneyBRL(costs.Total())
	grandTotal := subtotal.MustAdd(ancillary)

	return &AllocateCostsResponse{
		Items:          toLineItemResponses(allocated),
		Currency:       string(subtotal.Currency()),
		Subtotal:       subtotal.Amount(),
		TotalAncillary: ancillary.Amount(),
		GrandTotal:     grandTotal.Amount(),
	}, nil
}
