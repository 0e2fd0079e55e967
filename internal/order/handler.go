// AngelaMos | 2026
// handler.go

package order

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/order-api/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

// RegisterRoutes mounts /orders. Any authenticated user may use them.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/orders", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListOrders)
		r.Post("/", h.CreateOrder)
		r.Get("/{orderID}", h.GetOrder)
		r.Patch("/{orderID}", h.UpdateStatus)
		r.Delete("/{orderID}", h.DeleteOrder)
	})
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, OrderListResponse{Orders: ToOrderResponseList(orders)})
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	in, err := req.ToInput()
	if err != nil {
		writeError(w, err)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, ToOrderResponse(order))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := core.IDParam(r, "orderID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToOrderResponse(order))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := core.IDParam(r, "orderID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	var req UpdateStatusRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	order, err := h.service.ModifyStatus(r.Context(), orderID, Status(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToOrderResponse(order))
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := core.IDParam(r, "orderID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	order, err := h.service.DeleteOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToOrderResponse(order))
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrNotFound) {
		core.NotFound(w, "order")
		return
	}

	core.JSONError(w, err)
}
