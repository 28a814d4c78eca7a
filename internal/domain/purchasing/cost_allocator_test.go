package purchasing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func mustLineItem(t *testing.T, code string, quantity, unitPrice, unitDiscount string) LineItem {
	t.Helper()
	item, err := NewLineItem(code, "PROD-"+code, "UN", d(quantity), d(unitPrice), d(unitDiscount))
	require.NoError(t, err)
	return *item
}

func TestNewLineItem(t *testing.T) {
	t.Run("derives net unit and line total", func(t *testing.T) {
		item, err := NewLineItem("001", "PROD-001", "UN", d("10"), d("12.50"), d("2.50"))

		require.NoError(t, err)
		assert.True(t, item.NetUnit.Equal(d("10")))
		assert.True(t, item.LineTotal.Equal(d("100")))
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewLineItem("001", "PROD-001", "UN", d("0"), d("10"), d("0"))
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewLineItem("001", "PROD-001", "UN", d("1"), d("-10"), d("0"))
		assert.Error(t, err)
	})

	t.Run("rejects discount above price", func(t *testing.T) {
		_, err := NewLineItem("001", "PROD-001", "UN", d("1"), d("10"), d("10.01"))
		assert.Error(t, err)
	})

	t.Run("accepts discount equal to price", func(t *testing.T) {
		item, err := NewLineItem("001", "PROD-001", "UN", d("1"), d("10"), d("10"))
		require.NoError(t, err)
		assert.True(t, item.LineTotal.IsZero())
	})
}

func TestCostAllocator_Allocate(t *testing.T) {
	allocator := NewCostAllocator()

	t.Run("apportions freight by subtotal share", func(t *testing.T) {
		items := []LineItem{
			mustLineItem(t, "A", "6", "100", "0"),
			mustLineItem(t, "B", "4", "100", "0"),
		}
		costs := AncillaryCosts{Freight: d("100")}

		result := allocator.Allocate(items, costs)

		assert.True(t, result[0].AllocatedCost.Equal(d("60")), "got %s", result[0].AllocatedCost)
		assert.True(t, result[1].AllocatedCost.Equal(d("40")), "got %s", result[1].AllocatedCost)
		assert.True(t, result[0].FinalUnitCost.Equal(d("110")))
		assert.True(t, result[0].FinalLineCost.Equal(d("660")))
	})

	t.Run("sums freight insurance and other expenses", func(t *testing.T) {
		items := []LineItem{
			mustLineItem(t, "A", "1", "500", "0"),
			mustLineItem(t, "B", "1", "500", "0"),
		}
		costs := AncillaryCosts{Freight: d("30"), Insurance: d("10"), OtherExpenses: d("20")}

		result := allocator.Allocate(items, costs)

		assert.True(t, result[0].AllocatedCost.Equal(d("30")))
		assert.True(t, result[1].AllocatedCost.Equal(d("30")))
	})

	t.Run("conserves the ancillary total within cents", func(t *testing.T) {
		items := []LineItem{
			mustLineItem(t, "A", "1", "33.33", "0"),
			mustLineItem(t, "B", "1", "33.33", "0"),
			mustLineItem(t, "C", "1", "33.34", "0"),
		}
		costs := AncillaryCosts{Freight: d("10")}

		result := allocator.Allocate(items, costs)

		total := decimal.Zero
		for _, item := range result {
			total = total.Add(item.AllocatedCost)
		}
		diff := total.Sub(costs.Total()).Abs()
		assert.True(t, diff.LessThanOrEqual(d("0.03")), "drift %s exceeds a few cents", diff)
	})

	t.Run("is idempotent", func(t *testing.T) {
		items := []LineItem{
			mustLineItem(t, "A", "3", "19.99", "1.49"),
			mustLineItem(t, "B", "7", "4.15", "0"),
		}
		costs := AncillaryCosts{Freight: d("25.90"), Insurance: d("3.10")}

		first := allocator.Allocate(items, costs)
		second := allocator.Allocate(first, costs)

		for i := range first {
			assert.True(t, first[i].AllocatedCost.Equal(second[i].AllocatedCost))
			assert.True(t, first[i].FinalUnitCost.Equal(second[i].FinalUnitCost))
			assert.True(t, first[i].FinalLineCost.Equal(second[i].FinalLineCost))
		}
	})

	t.Run("zero subtotal yields zero allocation without error", func(t *testing.T) {
		items := []LineItem{
			mustLineItem(t, "A", "2", "10", "10"),
		}
		costs := AncillaryCosts{Freight: d("50")}

		result := allocator.Allocate(items, costs)

		assert.True(t, result[0].AllocatedCost.IsZero())
		assert.True(t, result[0].FinalUnitCost.IsZero())
	})

	t.Run("does not mutate the input slice", func(t *testing.T) {
		items := []LineItem{
			mustLineItem(t, "A", "1", "100", "0"),
		}
		costs := AncillaryCosts{Freight: d("10")}

		_ = allocator.Allocate(items, costs)

		assert.True(t, items[0].AllocatedCost.IsZero())
	})

	t.Run("empty item list returns empty result", func(t *testing.T) {
		result := allocator.Allocate(nil, AncillaryCosts{Freight: d("10")})
		assert.Empty(t, result)
	})
}
