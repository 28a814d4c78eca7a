package purchasing

import (
	"github.com/erp/distribution/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LineItem is a transient purchase entry line. It is not persisted by
// this engine; callers maintain the collection in memory and submit it
// for cost apportionment.
type LineItem struct {
	Code         string          `json:"code"`
	ProductRef   string          `json:"product_ref"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	UnitDiscount decimal.Decimal `json:"unit_discount"`

	// Derived fields, populated by NewLineItem and the allocator
	NetUnit       decimal.Decimal `json:"net_unit"`
	LineTotal     decimal.Decimal `json:"line_total"`
	AllocatedCost decimal.Decimal `json:"allocated_cost"`
	FinalUnitCost decimal.Decimal `json:"final_unit_cost"`
	FinalLineCost decimal.Decimal `json:"final_line_cost"`
}

// NewLineItem creates a line item and derives its net unit price and
// line total
func NewLineItem(code, productRef, unit string, quantity, unitPrice, unitDiscount decimal.Decimal) (*LineItem, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if unitDiscount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Unit discount cannot be negative")
	}
	if unitDiscount.GreaterThan(unitPrice) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Unit discount cannot exceed unit price")
	}

	item := &LineItem{
		Code:         code,
		ProductRef:   productRef,
		Unit:         unit,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		UnitDiscount: unitDiscount,
	}
	item.deriveBase()
	return item, nil
}

// deriveBase recomputes the fields that depend only on the item itself
func (i *LineItem) deriveBase() {
	i.NetUnit = i.UnitPrice.Sub(i.UnitDiscount)
	i.LineTotal = i.NetUnit.Mul(i.Quantity)
}
