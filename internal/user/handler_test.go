// AngelaMos | 2026
// handler_test.go

package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/order-api/internal/core/coretest"
	"github.com/carterperez-dev/templates/order-api/internal/middleware"
)

func asPrincipal(id int64, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{
				UserID: id,
				Role:   role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newRouter(t *testing.T, principalID int64, role string) (*chi.Mux, *Service) {
	t.Helper()

	svc := NewService(NewRepository(coretest.NewDB(t)))
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, asPrincipal(principalID, role), middleware.RequireAdmin)
	return r, svc
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandlerCreateAndGet(t *testing.T) {
	r, _ := newRouter(t, 1, RoleAdmin)

	rec := do(r, http.MethodPost, "/users",
		`{"email":"host@example.com","password":"password123","role":"regular"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "host@example.com", created.Email)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = do(r, http.MethodGet, "/users/"+jsonInt(created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodPost, "/users",
		`{"email":"host@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"DUPLICATE"`)
}

func TestHandlerValidation(t *testing.T) {
	r, _ := newRouter(t, 1, RoleAdmin)

	rec := do(r, http.MethodPost, "/users", `{"email":"nope","password":"short","role":"chef"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email must be a valid email address")
	assert.Contains(t, rec.Body.String(), "role must be one of: admin, regular")

	rec = do(r, http.MethodGet, "/users/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodGet, "/users/404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"user not found"`)
}

func TestHandlerRejectsRegularUsers(t *testing.T) {
	r, _ := newRouter(t, 2, RoleRegular)

	rec := do(r, http.MethodGet, "/users", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandlerDeleteSelfForbidden(t *testing.T) {
	r, svc := newRouter(t, 1, RoleAdmin)

	admin, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Email: "root@example.com", Password: "password123", Role: RoleAdmin,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), admin.ID)

	rec := do(r, http.MethodDelete, "/users/1", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func jsonInt(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
