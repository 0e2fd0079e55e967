// AngelaMos | 2026
// handler_test.go

package order

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/order-api/internal/middleware"
)

func asUser(id int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{
				UserID: id,
				Role:   "regular",
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newRouter(t *testing.T, productCount int) (*chi.Mux, *fixture) {
	t.Helper()

	f := newFixture(t, productCount)
	r := chi.NewRouter()
	NewHandler(f.svc).RegisterRoutes(r, asUser(f.userID))
	return r, f
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func orderPath(id int64) string {
	return "/orders/" + strconv.FormatInt(id, 10)
}

func TestHandlerCreateOrder(t *testing.T) {
	r, _ := newRouter(t, 5)

	rec := do(r, http.MethodPost, "/orders", `{
		"userId": 1,
		"client": "Alice",
		"status": "pending",
		"dateEntry": "2024-07-16T12:00:00",
		"products": [{"qty": 2, "product": {"id": 5}}]
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"dateEntry":"2024-07-16T12:00:00Z"`)
	assert.Contains(t, rec.Body.String(), `"products":[{"qty":2,"product":{"id":5`)
	assert.Contains(t, rec.Body.String(), `"dateProcessed":null`)
}

func TestHandlerCreateOrderUnknownProduct(t *testing.T) {
	r, f := newRouter(t, 1)

	rec := do(r, http.MethodPost, "/orders", `{
		"userId": 1,
		"client": "Alice",
		"status": "pending",
		"dateEntry": "2024-07-16T12:00:00Z",
		"products": [{"qty": 2, "product": {"id": 5}}]
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "product 5")
	assert.Contains(t, rec.Body.String(), `"code":"INVALID_REFERENCE"`)
	assert.Zero(t, count(t, f.db, "orders"))
}

func TestHandlerCreateOrderValidation(t *testing.T) {
	r, _ := newRouter(t, 1)

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "empty products",
			body: `{"userId":1,"client":"A","status":"pending","dateEntry":"2024-07-16T12:00:00Z","products":[]}`,
			want: "products must contain at least 1 item(s)",
		},
		{
			name: "unknown status",
			body: `{"userId":1,"client":"A","status":"shipped","dateEntry":"2024-07-16T12:00:00Z","products":[{"qty":1,"product":{"id":1}}]}`,
			want: "status must be one of",
		},
		{
			name: "zero quantity",
			body: `{"userId":1,"client":"A","status":"pending","dateEntry":"2024-07-16T12:00:00Z","products":[{"qty":0,"product":{"id":1}}]}`,
			want: "products[0].qty is required",
		},
		{
			name: "bad date",
			body: `{"userId":1,"client":"A","status":"pending","dateEntry":"16/07/2024","products":[{"qty":1,"product":{"id":1}}]}`,
			want: "INVALID_FORMAT",
		},
		{
			name: "malformed json",
			body: `{"userId":`,
			want: "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, http.MethodPost, "/orders", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestHandlerResponseRoundTrips(t *testing.T) {
	r, _ := newRouter(t, 3)

	sent := CreateOrderRequest{
		UserID:    1,
		Client:    "Bob",
		Status:    "pending",
		DateEntry: "2024-07-16T12:00:00Z",
		Products: []LineItemRequest{
			{Qty: 1, Product: ProductRef{ID: 3}},
			{Qty: 4, Product: ProductRef{ID: 1}},
		},
	}
	body, err := json.Marshal(sent)
	require.NoError(t, err)

	rec := do(r, http.MethodPost, "/orders", string(body))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(r, http.MethodGet, orderPath(created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var echoed CreateOrderRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &echoed))
	assert.Equal(t, sent, echoed)
}

func TestHandlerStatusAndDelete(t *testing.T) {
	r, f := newRouter(t, 1)

	rec := do(r, http.MethodPost, "/orders",
		`{"userId":1,"client":"A","status":"pending","dateEntry":"2024-07-16T12:00:00Z","products":[{"qty":1,"product":{"id":1}}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	path := orderPath(created.ID)

	rec = do(r, http.MethodPatch, path, `{"status":"shipped"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPatch, path, `{"status":"ready"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, StatusReady, updated.Status)
	require.NotNil(t, updated.DateProcessed)

	rec = do(r, http.MethodPatch, path, `{"status":"delivered"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(r, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ready"`)

	rec = do(r, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"order not found"`)

	rec = do(r, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, 1, count(t, f.db, "products"))
}

func TestHandlerListAndBadIDs(t *testing.T) {
	r, _ := newRouter(t, 1)

	rec := do(r, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"orders":[]}`, rec.Body.String())

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		rec = do(r, method, "/orders/abc", `{"status":"ready"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, method)
	}

	rec = do(r, http.MethodPatch, "/orders/999", `{"status":"ready"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
