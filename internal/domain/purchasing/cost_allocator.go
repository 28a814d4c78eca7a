package purchasing

import (
	"github.com/shopspring/decimal"
)

// AncillaryCosts are the purchase costs apportioned across line items
// in addition to the merchandise subtotal
type AncillaryCosts struct {
	Freight       decimal.Decimal `json:"freight"`
	Insurance     decimal.Decimal `json:"insurance"`
	OtherExpenses decimal.Decimal `json:"other_expenses"`
}

// Total returns the sum of all ancillary costs
func (c AncillaryCosts) Total() decimal.Decimal {
	return c.Freight.Add(c.Insurance).Add(c.OtherExpenses)
}

// CostAllocator apportions ancillary costs across line items in
// proportion to each item's share of the merchandise subtotal.
//
// Allocation is a pure recomputation: every call derives the allocated
// and landed costs from scratch, so repeated calls with the same inputs
// yield the same outputs. Each item's share is rounded independently,
// so the allocated costs can drift from the ancillary total by a few
// cents; no remainder correction is applied to the last item.
type CostAllocator struct{}

// NewCostAllocator creates a new cost allocator
func NewCostAllocator() *CostAllocator {
	return &CostAllocator{}
}

// Allocate returns a copy of the items with allocated and landed costs
// populated. When the subtotal is zero the items are returned with zero
// allocated cost and their landed costs equal to the net prices.
func (a *CostAllocator) Allocate(items []LineItem, costs AncillaryCosts) []LineItem {
	result := make([]LineItem, len(items))
	copy(result, items)

	subtotal := decimal.Zero
	for i := range result {
		result[i].deriveBase()
		subtotal = subtotal.Add(result[i].LineTotal)
	}

	totalAncillary := costs.Total()

	for i := range result {
		item := &result[i]
		if subtotal.IsZero() {
			item.AllocatedCost = decimal.Zero
		} else {
			proportion := item.LineTotal.Div(subtotal)
			item.AllocatedCost = totalAncillary.Mul(proportion).Round(2)
		}
		item.FinalUnitCost = item.NetUnit.Add(item.AllocatedCost.Div(item.Quantity)).Round(4)
		item.FinalLineCost = item.FinalUnitCost.Mul(item.Quantity).Round(2)
	}

	return result
}

// Subtotal returns the merchandise subtotal of the given items
func (a *CostAllocator) Subtotal(items []LineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.NetUnit.Mul(item.Quantity))
	}
	return subtotal
}
