package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	purchasingapp "github.com/erp/distribution/internal/application/purchasing"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCostingRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCostingHandler(purchasingapp.NewCostingService())

	engine := gin.New()
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)
	return engine
}

func TestCostingHandler_Allocate(t *testing.T) {
	t.Run("apportions costs proportionally", func(t *testing.T) {
		engine := newCostingRouter()

		body := map[string]any{
			"items": []map[string]any{
				{"code": "A", "quantity": "6", "unit_price": "100"},
				{"code": "B", "quantity": "4", "unit_price": "100"},
			},
			"freight": "100",
		}
		w := performJSON(t, engine, http.MethodPost, "/api/v1/purchasing/cost-allocations", body)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool                              `json:"success"`
			Data    purchasingapp.AllocateCostsResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data.Items, 2)
		assert.Equal(t, "60", resp.Data.Items[0].AllocatedCost.String())
		assert.Equal(t, "40", resp.Data.Items[1].AllocatedCost.String())
		assert.Equal(t, "1100", resp.Data.GrandTotal.String())
	})

	t.Run("returns 400 for negative ancillary cost", func(t *testing.T) {
		engine := newCostingRouter()

		body := map[string]any{
			"items":   []map[string]any{{"code": "A", "quantity": "1", "unit_price": "10"}},
			"freight": "-5",
		}
		w := performJSON(t, engine, http.MethodPost, "/api/v1/purchasing/cost-allocations", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_COST", resp.Error.Code)
	})

	t.Run("returns 400 for empty item list", func(t *testing.T) {
		engine := newCostingRouter()

		body := map[string]any{"items": []map[string]any{}}
		w := performJSON(t, engine, http.MethodPost, "/api/v1/purchasing/cost-allocations", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
