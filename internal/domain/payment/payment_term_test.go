package payment

import (
	"testing"

	"github.com/erp/distribution/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cashMethodID = uuid.New()

func validInputs() []InstallmentInput {
	return []InstallmentInput{
		{Number: 1, PaymentMethodID: cashMethodID, DaysToDue: 0, Percentage: decimal.RequireFromString("50")},
		{Number: 2, PaymentMethodID: cashMethodID, DaysToDue: 30, Percentage: decimal.RequireFromString("25")},
		{Number: 3, PaymentMethodID: cashMethodID, DaysToDue: 60, Percentage: decimal.RequireFromString("25")},
	}
}

func newTerm(t *testing.T, name string, inputs []InstallmentInput) (*PaymentTerm, error) {
	t.Helper()
	return NewPaymentTerm(name, "", decimal.Zero, decimal.Zero, decimal.Zero, inputs)
}

func TestNewPaymentTerm(t *testing.T) {
	t.Run("creates term with valid schedule", func(t *testing.T) {
		term, err := NewPaymentTerm("30/60/90", "three installments", decimal.RequireFromString("1.5"), decimal.RequireFromString("2"), decimal.Zero, validInputs())

		require.NoError(t, err)
		assert.NotNil(t, term)
		assert.NotEqual(t, uuid.Nil, term.ID)
		assert.Equal(t, TermStatusActive, term.Status)
		assert.Len(t, term.Installments, 3)
		for _, inst := range term.Installments {
			assert.Equal(t, term.ID, inst.PaymentTermID)
			assert.Equal(t, InstallmentStatusActive, inst.Status)
		}
		assert.Len(t, term.GetDomainEvents(), 1)
		assert.Equal(t, EventTypePaymentTermCreated, term.GetDomainEvents()[0].EventType())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		term, err := newTerm(t, "", validInputs())

		assert.Nil(t, term)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_NAME", domainErr.Code)
	})

	t.Run("rejects schedule that does not reach 100 percent", func(t *testing.T) {
		inputs := []InstallmentInput{
			{Number: 1, PaymentMethodID: cashMethodID, DaysToDue: 0, Percentage: decimal.RequireFromString("50")},
			{Number: 2, PaymentMethodID: cashMethodID, DaysToDue: 30, Percentage: decimal.RequireFromString("40")},
		}
		term, err := newTerm(t, "incomplete", inputs)

		assert.Nil(t, term)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALLOCATION_MISMATCH", domainErr.Code)
		assert.Contains(t, domainErr.Message, "90")
	})

	t.Run("rejects empty schedule", func(t *testing.T) {
		term, err := newTerm(t, "empty", nil)

		assert.Nil(t, term)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALLOCATION_MISMATCH", domainErr.Code)
	})

	t.Run("rejects negative rates", func(t *testing.T) {
		term, err := NewPaymentTerm("bad rates", "", decimal.RequireFromString("-1"), decimal.Zero, decimal.Zero, validInputs())

		assert.Nil(t, term)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_RATE", domainErr.Code)
	})

	t.Run("rejects duplicate installment numbers", func(t *testing.T) {
		inputs := []InstallmentInput{
			{Number: 1, PaymentMethodID: cashMethodID, DaysToDue: 0, Percentage: decimal.RequireFromString("50")},
			{Number: 1, PaymentMethodID: cashMethodID, DaysToDue: 30, Percentage: decimal.RequireFromString("50")},
		}
		term, err := newTerm(t, "dup", inputs)

		assert.Nil(t, term)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_INSTALLMENT_NUMBER", domainErr.Code)
	})
}

func TestNewInstallment(t *testing.T) {
	termID := uuid.New()

	t.Run("creates valid installment", func(t *testing.T) {
		inst, err := NewInstallment(termID, 1, cashMethodID, 30, decimal.RequireFromString("33.33"))

		require.NoError(t, err)
		assert.Equal(t, termID, inst.PaymentTermID)
		assert.Equal(t, 1, inst.Number)
		assert.Equal(t, 30, inst.DaysToDue)
		assert.True(t, inst.IsActive())
	})

	t.Run("accepts zero days to due for cash payment", func(t *testing.T) {
		inst, err := NewInstallment(termID, 1, cashMethodID, 0, decimal.NewFromInt(100))

		require.NoError(t, err)
		assert.Equal(t, 0, inst.DaysToDue)
	})

	t.Run("rejects non-positive number", func(t *testing.T) {
		_, err := NewInstallment(termID, 0, cashMethodID, 30, decimal.NewFromInt(100))
		assert.Error(t, err)
	})

	t.Run("rejects negative days", func(t *testing.T) {
		_, err := NewInstallment(termID, 1, cashMethodID, -1, decimal.NewFromInt(100))
		assert.Error(t, err)
	})

	t.Run("rejects percentage above 100", func(t *testing.T) {
		_, err := NewInstallment(termID, 1, cashMethodID, 30, decimal.RequireFromString("100.5"))
		assert.Error(t, err)
	})

	t.Run("rejects empty payment method", func(t *testing.T) {
		_, err := NewInstallment(termID, 1, uuid.Nil, 30, decimal.NewFromInt(100))
		assert.Error(t, err)
	})
}

func TestPaymentTerm_ReplaceInstallments(t *testing.T) {
	t.Run("replaces the whole schedule", func(t *testing.T) {
		term, err := newTerm(t, "original", validInputs())
		require.NoError(t, err)
		term.ClearDomainEvents()

		newInputs := []InstallmentInput{
			{Number: 1, PaymentMethodID: cashMethodID, DaysToDue: 15, Percentage: decimal.RequireFromString("60")},
			{Number: 2, PaymentMethodID: cashMethodID, DaysToDue: 45, Percentage: decimal.RequireFromString("40")},
		}
		err = term.ReplaceInstallments(newInputs)

		require.NoError(t, err)
		assert.Len(t, term.Installments, 2)
		assert.Equal(t, 15, term.Installments[0].DaysToDue)
		assert.Len(t, term.GetDomainEvents(), 1)
		assert.Equal(t, EventTypePaymentTermUpdated, term.GetDomainEvents()[0].EventType())
	})

	t.Run("keeps previous schedule when replacement is invalid", func(t *testing.T) {
		term, err := newTerm(t, "original", validInputs())
		require.NoError(t, err)

		bad := []InstallmentInput{
			{Number: 1, PaymentMethodID: cashMethodID, DaysToDue: 0, Percentage: decimal.RequireFromString("10")},
		}
		err = term.ReplaceInstallments(bad)

		require.Error(t, err)
		assert.Len(t, term.Installments, 3)
	})

	t.Run("rejects replacement on inactive term", func(t *testing.T) {
		term, err := newTerm(t, "original", validInputs())
		require.NoError(t, err)
		require.NoError(t, term.Deactivate())

		err = term.ReplaceInstallments(validInputs())

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestPaymentTerm_Deactivate(t *testing.T) {
	t.Run("deactivates term and all installments", func(t *testing.T) {
		term, err := newTerm(t, "to deactivate", validInputs())
		require.NoError(t, err)
		term.ClearDomainEvents()

		err = term.Deactivate()

		require.NoError(t, err)
		assert.Equal(t, TermStatusInactive, term.Status)
		for _, inst := range term.Installments {
			assert.Equal(t, InstallmentStatusInactive, inst.Status)
		}
		assert.Empty(t, term.ActiveInstallments())
		assert.Len(t, term.GetDomainEvents(), 1)
		assert.Equal(t, EventTypePaymentTermDeactivated, term.GetDomainEvents()[0].EventType())
	})

	t.Run("rejects double deactivation", func(t *testing.T) {
		term, err := newTerm(t, "to deactivate", validInputs())
		require.NoError(t, err)
		require.NoError(t, term.Deactivate())

		err = term.Deactivate()

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}
