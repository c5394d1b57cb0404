package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/cafepos/internal/checkout"
	"github.com/xenking/cafepos/internal/domain/catalog"
	"github.com/xenking/cafepos/internal/domain/giftcode"
	"github.com/xenking/cafepos/internal/domain/order"
	"github.com/xenking/cafepos/internal/domain/payment"
	"github.com/xenking/cafepos/internal/domain/pricing"
)

type placeOrderRequest struct {
	Items []struct {
		Recipe   string `json:"recipe"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
	LoyaltyPercent int    `json:"loyalty_percent"`
	GiftCode       string `json:"gift_code"`
}

// PlaceOrder builds, prices and stores an order from the request body.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]checkout.ItemRequest, len(req.Items))
	for i, it := range req.Items {
		items[i] = checkout.ItemRequest{Recipe: it.Recipe, Quantity: it.Quantity}
	}

	res, err := h.checkout.PlaceOrder(r.Context(), checkout.PlaceOrderRequest{
		Items:          items,
		LoyaltyPercent: req.LoyaltyPercent,
		GiftCode:       req.GiftCode,
	})
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	e := &jx.Encoder{}
	encodeOrder(e, res.Order, res.Receipt)
	writeJSON(w, http.StatusCreated, e)
}

// GetOrder fetches a stored order with its rendered receipt.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.checkout.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	e := &jx.Encoder{}
	encodeOrder(e, o, h.checkout.Receipt(o))
	writeJSON(w, http.StatusOK, e)
}

type payOrderRequest struct {
	Method     string `json:"method"`
	CardNumber string `json:"card_number"`
	WalletID   string `json:"wallet_id"`
}

// PayOrder captures payment for an order and moves it to preparing.
func (h *Handler) PayOrder(w http.ResponseWriter, r *http.Request) {
	var req payOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	strategy, err := paymentStrategy(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.checkout.PayOrder(r.Context(), r.PathValue("id"), strategy)
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	e := &jx.Encoder{}
	encodeOrder(e, o, "")
	writeJSON(w, http.StatusOK, e)
}

func paymentStrategy(req payOrderRequest) (payment.Strategy, error) {
	switch req.Method {
	case "card":
		return payment.NewCardPayment(req.CardNumber)
	case "cash":
		return payment.NewCashPayment(), nil
	case "wallet":
		return payment.NewWalletPayment(req.WalletID)
	default:
		return nil, errors.Errorf("unknown payment method %q", req.Method)
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus advances the order lifecycle: ready, delivered or cancelled.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := r.PathValue("id")

	var (
		o   *order.Order
		err error
	)
	switch order.Status(req.Status) {
	case order.StatusReady:
		o, err = h.checkout.MarkReady(r.Context(), id)
	case order.StatusDelivered:
		o, err = h.checkout.Deliver(r.Context(), id)
	case order.StatusCancelled:
		o, err = h.checkout.Cancel(r.Context(), id)
	default:
		writeError(w, http.StatusBadRequest, "unknown target status")
		return
	}
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	e := &jx.Encoder{}
	encodeOrder(e, o, "")
	writeJSON(w, http.StatusOK, e)
}

// writeOrderError maps domain errors to HTTP status codes. Unknown catalog
// tokens and gift codes are unprocessable; lifecycle conflicts are 409.
func (h *Handler) writeOrderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		baseErr  *catalog.UnknownBaseError
		addonErr *catalog.UnknownAddonError
		qtyErr   *checkout.InvalidQuantityError
		trErr    *order.InvalidTransitionError
	)
	switch {
	case errors.As(err, &baseErr),
		errors.As(err, &addonErr),
		errors.As(err, &qtyErr),
		errors.Is(err, giftcode.ErrUnknownCode):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, checkout.ErrEmptyItems),
		errors.Is(err, checkout.ErrConflictingDiscounts),
		errors.Is(err, catalog.ErrEmptyRecipe),
		errors.Is(err, pricing.ErrNegativePercent):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrNotFound):
		writeError(w, http.StatusNotFound, "order not found")
	case errors.As(err, &trErr):
		writeError(w, http.StatusConflict, err.Error())
	default:
		internalError(w, r, err)
	}
}
