package payment

import (
	"fmt"

	"github.com/erp/distribution/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AllocationTarget is the percentage total every installment set must reach
var AllocationTarget = decimal.NewFromInt(100)

// AllocationTolerance is the maximum accepted deviation from the target,
// absorbing rounding noise in user-entered percentages
var AllocationTolerance = decimal.NewFromFloat(0.01)

// PercentageAllocation is a set of percentage shares that together must
// cover the full allocation target
type PercentageAllocation struct {
	shares []decimal.Decimal
}

// NewPercentageAllocation creates an allocation from the given shares
func NewPercentageAllocation(shares []decimal.Decimal) PercentageAllocation {
	copied := make([]decimal.Decimal, len(shares))
	copy(copied, shares)
	return PercentageAllocation{shares: copied}
}

// Shares returns the percentage shares in this allocation
func (a PercentageAllocation) Shares() []decimal.Decimal {
	return a.shares
}

// Sum returns the total of all shares
func (a PercentageAllocation) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, s := range a.shares {
		total = total.Add(s)
	}
	return total
}

// IsComplete returns true if the shares sum to the allocation target
// within tolerance
func (a PercentageAllocation) IsComplete() bool {
	return a.Sum().Sub(AllocationTarget).Abs().LessThanOrEqual(AllocationTolerance)
}

// AllocationValidator validates that percentage shares fully cover the
// allocation target
type AllocationValidator struct{}

// NewAllocationValidator creates a new allocation validator
func NewAllocationValidator() *AllocationValidator {
	return &AllocationValidator{}
}

// Validate checks that the shares are non-empty and sum to 100% within
// tolerance. The computed sum is reported back in the error message so
// callers can surface it to the user. Sign validation of individual
// shares is the installment constructor's responsibility; the validator
// only sums what it is given.
func (v *AllocationValidator) Validate(shares []decimal.Decimal) error {
	if len(shares) == 0 {
		return shared.NewDomainError("ALLOCATION_MISMATCH",
			"At least one installment is required; percentage total is 0%, expected 100%")
	}

	allocation := NewPercentageAllocation(shares)
	if !allocation.IsComplete() {
		return shared.NewDomainError("ALLOCATION_MISMATCH",
			fmt.Sprintf("Installment percentages must total 100%%, got %s%%", allocation.Sum().String()))
	}
	return nil
}
