package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	paymentapp "github.com/erp/distribution/internal/application/payment"
	"github.com/erp/distribution/internal/domain/payment"
	"github.com/erp/distribution/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPaymentTermRepository implements payment.PaymentTermRepository for testing
type MockPaymentTermRepository struct {
	mock.Mock
}

func (m *MockPaymentTermRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.PaymentTerm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentTerm), args.Error(1)
}

func (m *MockPaymentTermRepository) FindByName(ctx context.Context, name string) (*payment.PaymentTerm, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentTerm), args.Error(1)
}

func (m *MockPaymentTermRepository) FindAll(ctx context.Context, filter shared.Filter) ([]payment.PaymentTerm, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.PaymentTerm), args.Error(1)
}

func (m *MockPaymentTermRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentTermRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentTermRepository) Save(ctx context.Context, term *payment.PaymentTerm) error {
	args := m.Called(ctx, term)
	return args.Error(0)
}

func (m *MockPaymentTermRepository) Update(ctx context.Context, term *payment.PaymentTerm) error {
	args := m.Called(ctx, term)
	return args.Error(0)
}

func (m *MockPaymentTermRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUsageChecker implements payment.UsageChecker for testing
type MockUsageChecker struct {
	mock.Mock
}

func (m *MockUsageChecker) IsReferenced(ctx context.Context, termID uuid.UUID) (bool, error) {
	args := m.Called(ctx, termID)
	return args.Bool(0), args.Error(1)
}

func newPaymentTermRouter(repo *MockPaymentTermRepository, checker *MockUsageChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := paymentapp.NewPaymentTermService(repo, checker)
	h := NewPaymentTermHandler(service)

	engine := gin.New()
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)
	return engine
}

func storedTerm(t *testing.T) *payment.PaymentTerm {
	t.Helper()
	methodID := uuid.New()
	term, err := payment.NewPaymentTerm("30/60 Net", "", decimal.Zero, decimal.Zero, decimal.Zero, []payment.InstallmentInput{
		{Number: 1, PaymentMethodID: methodID, DaysToDue: 30, Percentage: decimal.NewFromInt(50)},
		{Number: 2, PaymentMethodID: methodID, DaysToDue: 60, Percentage: decimal.NewFromInt(50)},
	})
	require.NoError(t, err)
	return term
}

func createTermBody(percentages ...string) map[string]any {
	installments := make([]map[string]any, len(percentages))
	for i, p := range percentages {
		installments[i] = map[string]any{
			"number":            i + 1,
			"payment_method_id": uuid.New().String(),
			"days_to_due":       30 * (i + 1),
			"percentage":        p,
		}
	}
	return map[string]any{
		"name":         "30/60 Net",
		"installments": installments,
	}
}

func performJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestPaymentTermHandler_Create(t *testing.T) {
	t.Run("creates term and returns 201", func(t *testing.T) {
		repo := new(MockPaymentTermRepository)
		checker := new(MockUsageChecker)
		engine := newPaymentTermRouter(repo, checker)

		repo.On("ExistsByName", mock.Anything, "30/60 Net", (*uuid.UUID)(nil)).Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*payment.PaymentTerm")).Return(nil)

		w := performJSON(t, engine, http.MethodPost, "/api/v1/payment/terms", createTermBody("50", "50"))

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Success bool                           `json:"success"`
			Data    paymentapp.PaymentTermResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "30/60 Net", resp.Data.Name)
		assert.Len(t, resp.Data.Installments, 2)
		repo.AssertExpectations(t)
	})

	t.Run("returns 400 with ALLOCATION_MISMATCH for incomplete percentages", func(t *testing.T) {
		repo := new(MockPaymentTermRepository)
		checker := new(MockUsageChecker)
		engine := newPaymentTermRouter(repo, checker)

		repo.On("ExistsByName", mock.Anything, "30/60 Net", (*uuid.UUID)(nil)).Return(false, nil)

		w := performJSON(t, engine, http.MethodPost, "/api/v1/payment/terms", createTermBody("50", "40"))

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Error   struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "ALLOCATION_MISMATCH", resp.Error.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("returns 409 for duplicate name", func(t *testing.T) {
		repo := new(MockPaymentTermRepository)
		checker := new(MockUsageChecker)
		engine := newPaymentTermRouter(repo, checker)

		repo.On("ExistsByName", mock.Anything, "30/60 Net", (*uuid.UUID)(nil)).Return(true, nil)

		w := performJSON(t, engine, http.MethodPost, "/api/v1/payment/terms", createTermBody("100"))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("returns 400 for malformed payload", func(t *testing.T) {
		repo := new(MockPaymentTermRepository)
		checker := new(MockUsageChecker)
		engine := newPaymentTermRouter(repo, checker)

		w := performJSON(t, engine, http.MethodPost, "/api/v1/payment/terms", map[string]any{"name": ""})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPaymentTermHandler_GetByID(t *testing.T) {
	t.Run("returns term", func(t *testing.T) {
		repo := new(MockPaymentTermRepository)
		checker := new(MockUsageChecker)
		engine := newPaymentTermRouter(repo, checker)

		term := storedTerm(t)
		repo.On("FindByID", mock.Anything, term.ID).Return(term, nil)

		w := performJSON(t, engine, http.MethodGet, "/api/v1/payment/terms/"+term.ID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("returns 404 for unknown term", func(t *testing.T) {
		repo := new(MockPaymentTermRepository)
		checker := new(MockUsageChecker)
		engine := newPaymentTermRouter(repo, checker)

		termID := uuid.New()
		repo.On("FindByID", mock.Anything, termID).Return(nil, shared.ErrNotFound)

		w := performJSON(t, engine, http.MethodGet, "/api/v1/payment/terms/"+termID.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 400 for malformed ID", func(t *testing.T) {
		repo := new(MockPaymentTermRepository)
		checker := new(MockUsageChecker)
		engine := newPaymentTermRouter(repo, checker)

		w := performJSON(t, engine, http.MethodGet, "/api/v1/payment/terms/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPaymentTermHandler_List(t *testing.T) {
	t.Run("returns paginated list with meta", func(t *testing.T) {
		repo := new(MockPaymentTermRepository)
		checker := new(MockUsageChecker)
		engine := newPaymentTermRouter(repo, checker)

		term := storedTerm(t)
		repo.On("FindAll", mock.Anything, mock.Anything).Return([]payment.PaymentTerm{*term}, nil)
		repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

		w := performJSON(t, engine, http.MethodGet, "/api/v1/payment/terms?page=1&page_size=20", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Meta    struct {
				Total int64 `json:"total"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.Meta.Total)
	})

	t.Run("rejects invalid status filter", func(t *testing.T) {
		repo := new(MockPaymentTermRepository)
		checker := new(MockUsageChecker)
		engine := newPaymentTermRouter(repo, checker)

		w := performJSON(t, engine, http.MethodGet, "/api/v1/payment/terms?status=BOGUS", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPaymentTermHandler_Update(t *testing.T) {
	t.Run("replaces installment schedule", func(t *testing.T) {
		repo := new(MockPaymentTermRepository)
		checker := new(MockUsageChecker)
		engine := newPaymentTermRouter(repo, checker)

		term := storedTerm(t)
		repo.On("FindByID", mock.Anything, term.ID).Return(term, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*payment.PaymentTerm")).Return(nil)

		body := map[string]any{
			"installments": []map[string]any{
				{"number": 1, "payment_method_id": uuid.New().String(), "days_to_due": 0, "percentage": "100"},
			},
		}
		w := performJSON(t, engine, http.MethodPatch, "/api/v1/payment/terms/"+term.ID.String(), body)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data paymentapp.PaymentTermResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Data.Installments, 1)
	})

	t.Run("keeps previous schedule on mismatch", func(t *testing.T) {
		repo := new(MockPaymentTermRepository)
		checker := new(MockUsageChecker)
		engine := newPaymentTermRouter(repo, checker)

		term := storedTerm(t)
		repo.On("FindByID", mock.Anything, term.ID).Return(term, nil)

		body := map[string]any{
			"installments": []map[string]any{
				{"number": 1, "payment_method_id": uuid.New().String(), "days_to_due": 0, "percentage": "90"},
			},
		}
		w := performJSON(t, engine, http.MethodPatch, "/api/v1/payment/terms/"+term.ID.String(), body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Len(t, term.Installments, 2)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestPaymentTermHandler_Remove(t *testing.T) {
	t.Run("hard deletes unreferenced term", func(t *testing.T) {
		repo := new(MockPaymentTermRepository)
		checker := new(MockUsageChecker)
		engine := newPaymentTermRouter(repo, checker)

		term := storedTerm(t)
		repo.On("FindByID", mock.Anything, term.ID).Return(term, nil)
		checker.On("IsReferenced", mock.Anything, term.ID).Return(false, nil)
		repo.On("Delete", mock.Anything, term.ID).Return(nil)

		w := performJSON(t, engine, http.MethodDelete, "/api/v1/payment/terms/"+term.ID.String(), nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		repo.AssertCalled(t, "Delete", mock.Anything, term.ID)
	})

	t.Run("deactivates referenced term", func(t *testing.T) {
		repo := new(MockPaymentTermRepository)
		checker := new(MockUsageChecker)
		engine := newPaymentTermRouter(repo, checker)

		term := storedTerm(t)
		repo.On("FindByID", mock.Anything, term.ID).Return(term, nil)
		checker.On("IsReferenced", mock.Anything, term.ID).Return(true, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*payment.PaymentTerm")).Return(nil)

		w := performJSON(t, engine, http.MethodDelete, "/api/v1/payment/terms/"+term.ID.String(), nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, payment.TermStatusInactive, term.Status)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestPaymentTermHandler_RouteSetup(t *testing.T) {
	repo := new(MockPaymentTermRepository)
	checker := new(MockUsageChecker)
	engine := newPaymentTermRouter(repo, checker)

	routes := engine.Routes()
	paths := make([]string, 0, len(routes))
	for _, r := range routes {
		paths = append(paths, fmt.Sprintf("%s %s", r.Method, r.Path))
	}

	assert.Contains(t, paths, "POST /api/v1/payment/terms")
	assert.Contains(t, paths, "GET /api/v1/payment/terms/:id")
	assert.Contains(t, paths, "PATCH /api/v1/payment/terms/:id")
	assert.Contains(t, paths, "DELETE /api/v1/payment/terms/:id")
}
