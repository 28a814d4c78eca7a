package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), BRL)
		require.NoError(t, err)
		assert.Equal(t, BRL, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", USD)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", BRL)
		assert.Error(t, err)
	})
}

func TestNewMoneyBRL(t *testing.T) {
	m := NewMoneyBRL(decimal.NewFromFloat(50.00))
	assert.Equal(t, BRL, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(50.00)))
}

func TestZeroBRL(t *testing.T) {
	m := ZeroBRL()
	assert.True(t, m.IsZero())
	assert.Equal(t, BRL, m.Currency())
}

func TestMoneySigns(t *testing.T) {
	positive := NewMoneyBRLFromFloat(100)
	negative := NewMoneyBRLFromFloat(-100)

	assert.True(t, positive.IsPositive())
	assert.False(t, positive.IsNegative())

	assert.True(t, negative.IsNegative())
	assert.False(t, negative.IsPositive())
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		m1 := NewMoneyBRLFromFloat(100.50)
		m2 := NewMoneyBRLFromFloat(50.25)
		result, err := m1.Add(m2)
		require.NoError(t, err)
		assert.True(t, result.Amount().Equal(decimal.NewFromFloat(150.75)))
	})

	t.Run("fails for different currencies", func(t *testing.T) {
		m1, _ := NewMoneyFromFloat(100, BRL)
		m2, _ := NewMoneyFromFloat(50, USD)
		_, err := m1.Add(m2)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "different currencies")
	})
}

func TestMoneyMustAdd(t *testing.T) {
	t.Run("same currency", func(t *testing.T) {
		result := NewMoneyBRLFromFloat(10).MustAdd(NewMoneyBRLFromFloat(5))
		assert.True(t, result.Amount().Equal(decimal.NewFromInt(15)))
	})

	t.Run("panics for different currencies", func(t *testing.T) {
		m1, _ := NewMoneyFromFloat(10, BRL)
		m2, _ := NewMoneyFromFloat(5, EUR)
		assert.Panics(t, func() { m1.MustAdd(m2) })
	})
}

func TestMoneySubtract(t *testing.T) {
	m1 := NewMoneyBRLFromFloat(100)
	m2 := NewMoneyBRLFromFloat(30)
	result, err := m1.Subtract(m2)
	require.NoError(t, err)
	assert.True(t, result.Amount().Equal(decimal.NewFromInt(70)))

	_, err = m1.Subtract(Zero(USD))
	assert.Error(t, err)
}

func TestMoneyMultiplyDivide(t *testing.T) {
	m := NewMoneyBRLFromFloat(100)

	doubled := m.Multiply(decimal.NewFromInt(2))
	assert.True(t, doubled.Amount().Equal(decimal.NewFromInt(200)))

	half, err := m.Divide(decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.True(t, half.Amount().Equal(decimal.NewFromInt(50)))

	_, err = m.Divide(decimal.Zero)
	assert.Error(t, err)
}

func TestMoneyComparisons(t *testing.T) {
	small := NewMoneyBRLFromFloat(10)
	big := NewMoneyBRLFromFloat(20)

	assert.True(t, small.Equals(NewMoneyBRLFromFloat(10)))
	assert.False(t, small.Equals(big))

	less, err := small.LessThan(big)
	require.NoError(t, err)
	assert.True(t, less)

	greater, err := big.GreaterThan(small)
	require.NoError(t, err)
	assert.True(t, greater)

	_, err = small.LessThan(Zero(USD))
	assert.Error(t, err)
}

func TestMoneyRound(t *testing.T) {
	m := NewMoneyBRLFromFloat(10.4567)
	rounded := m.Round(2)
	assert.Equal(t, "10.46", rounded.StringFixed(2))
}

func TestMoneyCalculatePercentage(t *testing.T) {
	m := NewMoneyBRLFromFloat(200)
	pct := m.CalculatePercentage(decimal.NewFromFloat(7.5))
	assert.True(t, pct.Amount().Equal(decimal.NewFromInt(15)))
	assert.Equal(t, BRL, pct.Currency())
}

func TestMoneyString(t *testing.T) {
	m := NewMoneyBRLFromFloat(1234.5)
	assert.Equal(t, "1234.50 BRL", m.String())
}

func TestMoneyJSON(t *testing.T) {
	original := NewMoneyBRLFromFloat(99.99)

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"99.99","currency":"BRL"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equals(original))
}

func TestMoneyScan(t *testing.T) {
	t.Run("scans string and defaults currency", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("42.10"))
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(42.10)))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("scans nil as zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan(12.5))
	})
}
