// Package handler exposes the checkout service over HTTP. Requests are
// decoded with encoding/json; responses are written with jx to keep
// allocations on the hot path low.
package handler

import (
	"net/http"

	"github.com/xenking/cafepos/internal/checkout"
	"github.com/xenking/cafepos/internal/domain/catalog"
)

// Handler serves the POS API, delegating business logic to the checkout
// service.
type Handler struct {
	checkout *checkout.Service
	catalog  *catalog.Factory
}

// NewHandler constructs a Handler with the required dependencies.
func NewHandler(svc *checkout.Service, factory *catalog.Factory) *Handler {
	return &Handler{
		checkout: svc,
		catalog:  factory,
	}
}

// Routes registers every API route on the given mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("POST /api/orders", h.PlaceOrder)
	mux.HandleFunc("GET /api/orders/{id}", h.GetOrder)
	mux.HandleFunc("POST /api/orders/{id}/pay", h.PayOrder)
	mux.HandleFunc("POST /api/orders/{id}/status", h.UpdateStatus)
}
