package persistence

import (
	"context"

	"github.com/erp/distribution/internal/domain/payment"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUsageChecker implements payment.UsageChecker by counting
// purchase documents that reference the payment term
type GormUsageChecker struct {
	db *gorm.DB
}

// NewGormUsageChecker creates a new GormUsageChecker
func NewGormUsageChecker(db *gorm.DB) *GormUsageChecker {
	return &GormUsageChecker{db: db}
}

// IsReferenced returns true if any purchase document references the
// given payment term
func (c *GormUsageChecker) IsReferenced(ctx context.Context, termID uuid.UUID) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).
		Table("purchase_documents").
		Where("payment_term_id = ?", termID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Interface compliance check
var _ payment.UsageChecker = (*GormUsageChecker)(nil)
