package payment

import (
	"github.com/erp/distribution/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypePaymentTerm = "PaymentTerm"

// Event type constants
const (
	EventTypePaymentTermCreated     = "PaymentTermCreated"
	EventTypePaymentTermUpdated     = "PaymentTermUpdated"
	EventTypePaymentTermDeactivated = "PaymentTermDeactivated"
	EventTypePaymentTermDeleted     = "PaymentTermDeleted"
)

// InstallmentInfo represents installment data carried by events
type InstallmentInfo struct {
	InstallmentID   uuid.UUID `json:"installment_id"`
	Number          int       `json:"number"`
	PaymentMethodID uuid.UUID `json:"payment_method_id"`
	DaysToDue       int       `json:"days_to_due"`
	Percentage      string    `json:"percentage"`
}

func installmentInfos(term *PaymentTerm) []InstallmentInfo {
	infos := make([]InstallmentInfo, len(term.Installments))
	for i, inst := range term.Installments {
		infos[i] = InstallmentInfo{
			InstallmentID:   inst.ID,
			Number:          inst.Number,
			PaymentMethodID: inst.PaymentMethodID,
			DaysToDue:       inst.DaysToDue,
			Percentage:      inst.Percentage.String(),
		}
	}
	return infos
}

// PaymentTermCreatedEvent is raised when a new payment term is created
type PaymentTermCreatedEvent struct {
	shared.BaseDomainEvent
	TermID       uuid.UUID         `json:"term_id"`
	Name         string            `json:"name"`
	Installments []InstallmentInfo `json:"installments"`
}

// NewPaymentTermCreatedEvent creates a new PaymentTermCreatedEvent
func NewPaymentTermCreatedEvent(term *PaymentTerm) *PaymentTermCreatedEvent {
	return &PaymentTermCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentTermCreated, AggregateTypePaymentTerm, term.ID),
		TermID:          term.ID,
		Name:            term.Name,
		Installments:    installmentInfos(term),
	}
}

// EventType returns the event type name
func (e *PaymentTermCreatedEvent) EventType() string {
	return EventTypePaymentTermCreated
}

// PaymentTermUpdatedEvent is raised when a payment term schedule is replaced
type PaymentTermUpdatedEvent struct {
	shared.BaseDomainEvent
	TermID       uuid.UUID         `json:"term_id"`
	Name         string            `json:"name"`
	Installments []InstallmentInfo `json:"installments"`
}

// NewPaymentTermUpdatedEvent creates a new PaymentTermUpdatedEvent
func NewPaymentTermUpdatedEvent(term *PaymentTerm) *PaymentTermUpdatedEvent {
	return &PaymentTermUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentTermUpdated, AggregateTypePaymentTerm, term.ID),
		TermID:          term.ID,
		Name:            term.Name,
		Installments:    installmentInfos(term),
	}
}

// EventType returns the event type name
func (e *PaymentTermUpdatedEvent) EventType() string {
	return EventTypePaymentTermUpdated
}

// PaymentTermDeactivatedEvent is raised when a referenced term is soft
// deactivated instead of deleted
type PaymentTermDeactivatedEvent struct {
	shared.BaseDomainEvent
	TermID uuid.UUID `json:"term_id"`
	Name   string    `json:"name"`
}

// NewPaymentTermDeactivatedEvent creates a new PaymentTermDeactivatedEvent
func NewPaymentTermDeactivatedEvent(term *PaymentTerm) *PaymentTermDeactivatedEvent {
	return &PaymentTermDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentTermDeactivated, AggregateTypePaymentTerm, term.ID),
		TermID:          term.ID,
		Name:            term.Name,
	}
}

// EventType returns the event type name
func (e *PaymentTermDeactivatedEvent) EventType() string {
	return EventTypePaymentTermDeactivated
}

// PaymentTermDeletedEvent is raised when an unreferenced term is hard
// deleted together with its installments
type PaymentTermDeletedEvent struct {
	shared.BaseDomainEvent
	TermID uuid.UUID `json:"term_id"`
	Name   string    `json:"name"`
}

// NewPaymentTermDeletedEvent creates a new PaymentTermDeletedEvent
func NewPaymentTermDeletedEvent(term *PaymentTerm) *PaymentTermDeletedEvent {
	return &PaymentTermDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentTermDeleted, AggregateTypePaymentTerm, term.ID),
		TermID:          term.ID,
		Name:            term.Name,
	}
}

// EventType returns the event type name
func (e *PaymentTermDeletedEvent) EventType() string {
	return EventTypePaymentTermDeleted
}
