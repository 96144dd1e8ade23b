package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"stock_ledger/internal/auth"
	"stock_ledger/internal/ledger"
)

const (
	testUser     = "clerk"
	testPassword = "counter"
)

func initRoutesTests(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	logger := zaptest.NewLogger(t)
	gate := auth.NewGate(auth.NewLocalUserStorage(), auth.NewPasswordHasher(bcrypt.MinCost), logger)
	svc := ledger.NewService(ledger.NewLocalStorage(), logger, 5)

	InitRoutes(router, svc, gate, logger)
	return router
}

func doJSON(router *gin.Engine, method, path string, body any, authenticated bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.SetBasicAuth(testUser, testPassword)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, router *gin.Engine) {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/users/register", map[string]string{"username": testUser, "password": testPassword}, false)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestPing(t *testing.T) {
	router := initRoutesTests(t)

	w := doJSON(router, http.MethodGet, "/ping", nil, false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(requestIDHeader), "Expected a generated request id")
}

func TestUsers_RegisterAndLogin(t *testing.T) {
	router := initRoutesTests(t)
	register(t, router)

	w := doJSON(router, http.MethodPost, "/users/register", map[string]string{"username": testUser, "password": "other"}, false)
	assert.Equal(t, http.StatusConflict, w.Code, "Expected duplicate registration to conflict")

	w = doJSON(router, http.MethodPost, "/users/register", map[string]string{"username": "", "password": "x"}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/users/login", map[string]string{"username": testUser, "password": testPassword}, false)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/users/login", map[string]string{"username": testUser, "password": "wrong"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLedgerRoutes_RequireAuthentication(t *testing.T) {
	router := initRoutesTests(t)

	w := doJSON(router, http.MethodGet, "/products", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodGet, "/products", nil, true)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "Expected unregistered credentials to be rejected")
}

// TestLedgerHappyPath_FullFlow exercises POST product -> POST sale -> reports.
func TestLedgerHappyPath_FullFlow(t *testing.T) {
	router := initRoutesTests(t)
	register(t, router)

	var productID int64

	t.Run("POST_CreateProduct", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/products", map[string]any{"name": "Widget", "quantity": 10, "price": 2.50}, true)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created ledger.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Widget", created.Name)
		assert.Equal(t, 10, created.Quantity)
		assert.Equal(t, 2.50, created.Price)
		productID = created.ID
	})
	require.NotZero(t, productID, "Product ID was not generated in POST_CreateProduct step.")

	t.Run("POST_RecordSale", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/sales", map[string]any{"product_id": productID, "quantity": 4}, true)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var sale ledger.Sale
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sale))
		assert.Equal(t, productID, sale.ProductID)
		assert.Equal(t, 4, sale.Quantity)
		assert.NotEmpty(t, sale.Date)
	})

	t.Run("POST_RecordSale_InsufficientStock", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/sales", map[string]any{"product_id": productID, "quantity": 10}, true)
		assert.Equal(t, http.StatusConflict, w.Code)

		w = doJSON(router, http.MethodGet, fmt.Sprintf("/products/%d", productID), nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		var p ledger.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.Equal(t, 6, p.Quantity, "Expected stock unchanged after rejected sale")
	})

	t.Run("POST_RecordSale_UnknownProduct", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/sales", map[string]any{"product_id": productID + 50, "quantity": 1}, true)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("PUT_UpdateProduct", func(t *testing.T) {
		w := doJSON(router, http.MethodPut, fmt.Sprintf("/products/%d", productID), map[string]any{"name": "Widget", "quantity": 4, "price": 3}, true)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = doJSON(router, http.MethodPut, fmt.Sprintf("/products/%d", productID), map[string]any{"name": "Widget"}, true)
		assert.Equal(t, http.StatusBadRequest, w.Code, "Expected full replace to require every field")
	})

	t.Run("GET_ListProducts", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/products", nil, true)
		require.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Results  []ledger.ProductView `json:"results"`
			Metadata ProductsMetadata     `json:"metadata"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Results, 1)
		assert.True(t, response.Results[0].Low, "Expected stock of 4 to be flagged low")
		assert.Equal(t, ProductsMetadata{Quantity: 1, Low: 1, Threshold: 5}, response.Metadata)
	})

	t.Run("GET_LowStock", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/reports/low-stock?threshold=4", nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		var response struct {
			Results []ledger.Product `json:"results"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Empty(t, response.Results, "Expected strict inequality at the threshold")

		w = doJSON(router, http.MethodGet, "/reports/low-stock?threshold=abc", nil, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GET_SalesSummary", func(t *testing.T) {
		var response struct {
			Results []ledger.SummaryRow `json:"results"`
		}

		w := doJSON(router, http.MethodGet, "/reports/sales-summary", nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, []ledger.SummaryRow{{ProductName: "Widget", TotalQuantity: 4, TotalRevenue: 12}}, response.Results)

		w = doJSON(router, http.MethodGet, "/reports/sales-summary?pricing=sale", nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, []ledger.SummaryRow{{ProductName: "Widget", TotalQuantity: 4, TotalRevenue: 10}}, response.Results)

		w = doJSON(router, http.MethodGet, "/reports/sales-summary?pricing=bogus", nil, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("DELETE_Product", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, fmt.Sprintf("/products/%d", productID), nil, true)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(router, http.MethodDelete, fmt.Sprintf("/products/%d", productID), nil, true)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doJSON(router, http.MethodGet, "/sales", nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		var response struct {
			Results []ledger.Sale `json:"results"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Results, 1, "Expected sales to survive product deletion")
	})
}

func TestCreateProduct_Validation(t *testing.T) {
	router := initRoutesTests(t)
	register(t, router)

	w := doJSON(router, http.MethodPost, "/products", map[string]any{"name": "", "quantity": 1, "price": 1}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/products", map[string]any{"name": "Widget", "quantity": -1, "price": 1}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodGet, "/products/abc", nil, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
