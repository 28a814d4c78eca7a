package payment

import (
	"context"

	"github.com/erp/distribution/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentTermRepository defines persistence operations for payment terms.
// Save and Update persist the aggregate together with its installment set
// in a single transaction.
type PaymentTermRepository interface {
	// FindByID finds a payment term by ID, including its installments
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentTerm, error)

	// FindByName finds a payment term by its unique name
	FindByName(ctx context.Context, name string) (*PaymentTerm, error)

	// FindAll returns payment terms matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]PaymentTerm, error)

	// Count returns the number of payment terms matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByName checks whether a term with the given name exists,
	// excluding the given ID when not nil
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)

	// Save persists a new payment term and its installments atomically
	Save(ctx context.Context, term *PaymentTerm) error

	// Update persists the term and replaces its installment set atomically
	Update(ctx context.Context, term *PaymentTerm) error

	// Delete hard deletes the term and its installments
	Delete(ctx context.Context, id uuid.UUID) error
}

// UsageChecker reports whether a payment term is referenced by other
// records. A referenced term must be deactivated instead of deleted.
type UsageChecker interface {
	// IsReferenced returns true if any document or payment method
	// references the given payment term
	IsReferenced(ctx context.Context, termID uuid.UUID) (bool, error)
}
