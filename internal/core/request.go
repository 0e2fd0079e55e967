// AngelaMos | 2026
// request.go

package core

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// IDParam reads a positive integer route parameter such as {orderID}.
func IDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ValidationError("invalid " + name + ": " + strconv.Quote(raw))
	}

	return id, nil
}
