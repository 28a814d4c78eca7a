package persistence

import (
	"context"
	"errors"

	"github.com/erp/distribution/internal/domain/payment"
	"github.com/erp/distribution/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentTermRepository implements payment.PaymentTermRepository
// using GORM
type GormPaymentTermRepository struct {
	db *gorm.DB
}

// NewGormPaymentTermRepository creates a new GormPaymentTermRepository
func NewGormPaymentTermRepository(db *gorm.DB) *GormPaymentTermRepository {
	return &GormPaymentTermRepository{db: db}
}

// FindByID finds a payment term by ID with its installments
func (r *GormPaymentTermRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.PaymentTerm, error) {
	var term payment.PaymentTerm
	if err := r.db.WithContext(ctx).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		First(&term, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &term, nil
}

// FindByName finds a payment term by its unique name
func (r *GormPaymentTermRepository) FindByName(ctx context.Context, name string) (*payment.PaymentTerm, error) {
	var term payment.PaymentTerm
	if err := r.db.WithContext(ctx).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		Where("name = ?", name).
		First(&term).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &term, nil
}

// FindAll finds payment terms matching the filter
func (r *GormPaymentTermRepository) FindAll(ctx context.Context, filter shared.Filter) ([]payment.PaymentTerm, error) {
	var terms []payment.PaymentTerm

	query := r.db.WithContext(ctx).Model(&payment.PaymentTerm{})
	query = r.applyFilter(query, filter, true)

	if err := query.Preload("Installments").Find(&terms).Error; err != nil {
		return nil, err
	}
	return terms, nil
}

// Count returns the number of payment terms matching the filter
func (r *GormPaymentTermRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&payment.PaymentTerm{})
	query = r.applyFilter(query, filter, false)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks whether a term with the given name exists,
// excluding the given ID when not nil
func (r *GormPaymentTermRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&payment.PaymentTerm{}).
		Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists a new payment term and its installments in one
// transaction. Constraint violations surface as domain errors and the
// transaction is rolled back, leaving no partial installment set.
func (r *GormPaymentTermRepository) Save(ctx context.Context, term *payment.PaymentTerm) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Installments").Create(term).Error; err != nil {
			return err
		}
		for i := range term.Installments {
			term.Installments[i].PaymentTermID = term.ID
			if err := tx.Create(&term.Installments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateConstraintError(err)
}

// Update persists the term and replaces its installment set in one
// transaction. All existing installment rows are deleted and the
// current set inserted fresh, so reordered installment numbers never
// collide with stale rows.
func (r *GormPaymentTermRepository) Update(ctx context.Context, term *payment.PaymentTerm) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Installments").Save(term).Error; err != nil {
			return err
		}

		if err := tx.Where("payment_term_id = ?", term.ID).
			Delete(&payment.Installment{}).Error; err != nil {
			return err
		}

		for i := range term.Installments {
			term.Installments[i].PaymentTermID = term.ID
			if err := tx.Create(&term.Installments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateConstraintError(err)
}

// Delete hard deletes the term and its installments
func (r *GormPaymentTermRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payment_term_id = ?", id).
			Delete(&payment.Installment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&payment.PaymentTerm{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormPaymentTermRepository) applyFilter(query *gorm.DB, filter shared.Filter, paginate bool) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	if !paginate {
		return query
	}

	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, PaymentTermSortFields, "name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	return query.Order(sortField + " " + sortOrder)
}

// translateConstraintError maps GORM's translated driver errors to
// domain errors. Pre-checks exist in the service layer, but the
// database constraint is the final authority.
func translateConstraintError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewDomainError("ALREADY_EXISTS", "Payment term with this name already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewDomainError("INVALID_REFERENCE", "Referenced payment method does not exist")
	default:
		return err
	}
}

// Interface compliance check
var _ payment.PaymentTermRepository = (*GormPaymentTermRepository)(nil)
