package purchasing

import (
	"github.com/erp/distribution/internal/domain/purchasing"
	"github.com/shopspring/decimal"
)

// LineItemRequest represents one purchase entry line submitted for
// cost apportionment
type LineItemRequest struct {
	Code         string          `json:"code" binding:"required,max=50"`
	ProductRef   string          `json:"product_ref" binding:"max=100"`
	Unit         string          `json:"unit" binding:"max=20"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	UnitDiscount decimal.Decimal `json:"unit_discount"`
}

// AllocateCostsRequest represents a cost apportionment request
type AllocateCostsRequest struct {
	Items         []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	Freight       decimal.Decimal   `json:"freight"`
	Insurance     decimal.Decimal   `json:"insurance"`
	OtherExpenses decimal.Decimal   `json:"other_expenses"`
}

// LineItemResponse represents a line item with derived costs populated
type LineItemResponse struct {
	Code          string          `json:"code"`
	ProductRef    string          `json:"product_ref"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	UnitDiscount  decimal.Decimal `json:"unit_discount"`
	NetUnit       decimal.Decimal `json:"net_unit"`
	LineTotal     decimal.Decimal `json:"line_total"`
	AllocatedCost decimal.Decimal `json:"allocated_cost"`
	FinalUnitCost decimal.Decimal `json:"final_unit_cost"`
	FinalLineCost decimal.Decimal `json:"final_line_cost"`
}

// AllocateCostsResponse represents the apportionment result
type AllocateCostsResponse struct {
	Items          []LineItemResponse `json:"items"`
	Currency       string             `json:"currency"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	TotalAncillary decimal.Decimal    `json:"total_ancillary"`
	GrandTotal     decimal.Decimal    `json:"grand_total"`
}

func toLineItemResponses(items []purchasing.LineItem) []LineItemResponse {
	responses := make([]LineItemResponse, len(items))
	for i, item := range items {
		responses[i] = LineItemResponse{
			Code:          item.Code,
			ProductRef:    item.ProductRef,
			Unit:          item.Unit,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			UnitDiscount:  item.UnitDiscount,
			NetUnit:       item.NetUnit,
			LineTotal:     item.LineTotal,
			AllocatedCost: item.AllocatedCost,
			FinalUnitCost: item.FinalUnitCost,
			FinalLineCost: item.FinalLineCost,
		}
	}
	return responses
}
