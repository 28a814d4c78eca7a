package payment

import (
	"fmt"
	"time"

	"github.com/erp/distribution/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TermStatus represents the lifecycle status of a payment term
type TermStatus string

const (
	TermStatusActive   TermStatus = "ACTIVE"
	TermStatusInactive TermStatus = "INACTIVE"
)

// IsValid checks if the status is a valid TermStatus
func (s TermStatus) IsValid() bool {
	switch s {
	case TermStatusActive, TermStatusInactive:
		return true
	}
	return false
}

// String returns the string representation of TermStatus
func (s TermStatus) String() string {
	return string(s)
}

// InstallmentStatus represents the lifecycle status of an installment
type InstallmentStatus string

const (
	InstallmentStatusActive   InstallmentStatus = "ACTIVE"
	InstallmentStatusInactive InstallmentStatus = "INACTIVE"
)

// IsValid checks if the status is a valid InstallmentStatus
func (s InstallmentStatus) IsValid() bool {
	switch s {
	case InstallmentStatusActive, InstallmentStatusInactive:
		return true
	}
	return false
}

// String returns the string representation of InstallmentStatus
func (s InstallmentStatus) String() string {
	return string(s)
}

// Installment represents a single slice of a payment term schedule
type Installment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primary_key"`
	PaymentTermID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	Number          int               `gorm:"not null"`                   // Sequence within the term, starting at 1
	PaymentMethodID uuid.UUID         `gorm:"type:uuid;not null"`         // External payment method reference
	DaysToDue       int               `gorm:"not null"`                   // Days from document date until due
	Percentage      decimal.Decimal   `gorm:"type:decimal(9,4);not null"` // Share of the total, 0 < p <= 100
	Status          InstallmentStatus `gorm:"type:varchar(20);not null"`
	CreatedAt       time.Time         `gorm:"not null"`
	UpdatedAt       time.Time         `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Installment) TableName() string {
	return "installments"
}

// NewInstallment creates a new installment for a payment term
func NewInstallment(paymentTermID uuid.UUID, number int, paymentMethodID uuid.UUID, daysToDue int, percentage decimal.Decimal) (*Installment, error) {
	if number <= 0 {
		return nil, shared.NewDomainError("INVALID_INSTALLMENT_NUMBER", "Installment number must be positive")
	}
	if paymentMethodID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method ID cannot be empty")
	}
	if daysToDue < 0 {
		return nil, shared.NewDomainError("INVALID_DAYS_TO_DUE", "Days to due cannot be negative")
	}
	if percentage.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PERCENTAGE",
			fmt.Sprintf("Installment percentage must be positive, got %s%%", percentage.String()))
	}
	if percentage.GreaterThan(AllocationTarget) {
		return nil, shared.NewDomainError("INVALID_PERCENTAGE",
			fmt.Sprintf("Installment percentage cannot exceed 100%%, got %s%%", percentage.String()))
	}

	now := time.Now()
	return &Installment{
		ID:              uuid.New(),
		PaymentTermID:   paymentTermID,
		Number:          number,
		PaymentMethodID: paymentMethodID,
		DaysToDue:       daysToDue,
		Percentage:      percentage,
		Status:          InstallmentStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// IsActive returns true if the installment is active
func (i *Installment) IsActive() bool {
	return i.Status == InstallmentStatusActive
}

// Deactivate marks the installment as inactive
func (i *Installment) Deactivate() {
	i.Status = InstallmentStatusInactive
	i.UpdatedAt = time.Now()
}

// InstallmentInput carries the caller-provided fields for one installment
// when creating or replacing a term schedule
type InstallmentInput struct {
	Number          int
	PaymentMethodID uuid.UUID
	DaysToDue       int
	Percentage      decimal.Decimal
}

// PaymentTerm is the aggregate root for a payment condition and its
// installment schedule. The schedule is always replaced as a whole so
// the allocation invariant can be checked against the full set.
type PaymentTerm struct {
	shared.BaseAggregateRoot
	Name               string          `gorm:"type:varchar(100);not null"`
	Description        string          `gorm:"type:varchar(500)"`
	InterestRate       decimal.Decimal `gorm:"type:decimal(9,4);not null"` // Monthly interest applied after due date
	FineRate           decimal.Decimal `gorm:"type:decimal(9,4);not null"` // One-off fine percentage after due date
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(9,4);not null"` // Early payment discount
	Status             TermStatus      `gorm:"type:varchar(20);not null"`
	Installments       []Installment   `gorm:"foreignKey:PaymentTermID"`
}

// TableName returns the table name for GORM
func (PaymentTerm) TableName() string {
	return "payment_terms"
}

// NewPaymentTerm creates a payment term with its full installment schedule.
// The schedule is validated as a whole before any installment is built.
func NewPaymentTerm(name, description string, interestRate, fineRate, discountPercentage decimal.Decimal, inputs []InstallmentInput) (*PaymentTerm, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Payment term name cannot be empty")
	}
	if err := validateRates(interestRate, fineRate, discountPercentage); err != nil {
		return nil, err
	}

	term := &PaymentTerm{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Name:               name,
		Description:        description,
		InterestRate:       interestRate,
		FineRate:           fineRate,
		DiscountPercentage: discountPercentage,
		Status:             TermStatusActive,
	}

	if err := term.setInstallments(inputs); err != nil {
		return nil, err
	}

	term.AddDomainEvent(NewPaymentTermCreatedEvent(term))
	return term, nil
}

func validateRates(interestRate, fineRate, discountPercentage decimal.Decimal) error {
	if interestRate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Interest rate cannot be negative")
	}
	if fineRate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Fine rate cannot be negative")
	}
	if discountPercentage.IsNegative() || discountPercentage.GreaterThan(AllocationTarget) {
		return shared.NewDomainError("INVALID_RATE", "Discount percentage must be between 0 and 100")
	}
	return nil
}

// setInstallments validates and builds the installment schedule
func (t *PaymentTerm) setInstallments(inputs []InstallmentInput) error {
	shares := make([]decimal.Decimal, 0, len(inputs))
	for _, in := range inputs {
		shares = append(shares, in.Percentage)
	}
	validator := NewAllocationValidator()
	if err := validator.Validate(shares); err != nil {
		return err
	}

	seen := make(map[int]bool, len(inputs))
	installments := make([]Installment, 0, len(inputs))
	for _, in := range inputs {
		if seen[in.Number] {
			return shared.NewDomainError("DUPLICATE_INSTALLMENT_NUMBER",
				fmt.Sprintf("Installment number %d appears more than once", in.Number))
		}
		seen[in.Number] = true

		inst, err := NewInstallment(t.ID, in.Number, in.PaymentMethodID, in.DaysToDue, in.Percentage)
		if err != nil {
			return err
		}
		installments = append(installments, *inst)
	}

	t.Installments = installments
	return nil
}

// ReplaceInstallments replaces the whole installment schedule. Partial
// edits are not supported so the allocation invariant always holds for
// the persisted set.
func (t *PaymentTerm) ReplaceInstallments(inputs []InstallmentInput) error {
	if !t.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify an inactive payment term")
	}
	if err := t.setInstallments(inputs); err != nil {
		return err
	}
	t.UpdatedAt = time.Now()
	t.AddDomainEvent(NewPaymentTermUpdatedEvent(t))
	return nil
}

// UpdateName changes the term name
func (t *PaymentTerm) UpdateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Payment term name cannot be empty")
	}
	t.Name = name
	t.UpdatedAt = time.Now()
	return nil
}

// UpdateDescription changes the term description
func (t *PaymentTerm) UpdateDescription(description string) {
	t.Description = description
	t.UpdatedAt = time.Now()
}

// UpdateRates changes the interest, fine and discount rates
func (t *PaymentTerm) UpdateRates(interestRate, fineRate, discountPercentage decimal.Decimal) error {
	if err := validateRates(interestRate, fineRate, discountPercentage); err != nil {
		return err
	}
	t.InterestRate = interestRate
	t.FineRate = fineRate
	t.DiscountPercentage = discountPercentage
	t.UpdatedAt = time.Now()
	return nil
}

// IsActive returns true if the term is active
func (t *PaymentTerm) IsActive() bool {
	return t.Status == TermStatusActive
}

// Deactivate marks the term and every installment inactive. Used when
// the term is referenced by documents and cannot be hard deleted.
func (t *PaymentTerm) Deactivate() error {
	if !t.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "Payment term is already inactive")
	}
	t.Status = TermStatusInactive
	for i := range t.Installments {
		t.Installments[i].Deactivate()
	}
	t.UpdatedAt = time.Now()
	t.AddDomainEvent(NewPaymentTermDeactivatedEvent(t))
	return nil
}

// ActiveInstallments returns only the active installments, ordered as stored
func (t *PaymentTerm) ActiveInstallments() []Installment {
	active := make([]Installment, 0, len(t.Installments))
	for _, inst := range t.Installments {
		if inst.IsActive() {
			active = append(active, inst)
		}
	}
	return active
}
