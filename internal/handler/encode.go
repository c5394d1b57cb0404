package handler

import (
	"net/http"
	"time"

	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/cafepos/internal/domain/order"
	"github.com/xenking/cafepos/internal/domain/pricing"
)

// writeJSON renders the encoder output with the given status code.
func writeJSON(w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError renders the {code, message} error payload.
func writeError(w http.ResponseWriter, status int, message string) {
	e := &jx.Encoder{}
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Int(status) })
		e.Field("message", func(e *jx.Encoder) { e.Str(message) })
	})
	writeJSON(w, status, e)
}

// internalError logs the unexpected error and renders an opaque 500.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	zctx.From(r.Context()).Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func encodeOrder(e *jx.Encoder, o *order.Order, receipt string) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(o.ID()) })
		e.Field("status", func(e *jx.Encoder) { e.Str(string(o.Status())) })
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, li := range o.Items() {
					encodeLineItem(e, li)
				}
			})
		})
		if res, ok := o.Pricing(); ok {
			e.Field("pricing", func(e *jx.Encoder) { encodePricing(e, res) })
		}
		if code := o.GiftCode(); code != "" {
			e.Field("gift_code", func(e *jx.Encoder) { e.Str(code) })
		}
		e.Field("created_at", func(e *jx.Encoder) {
			e.Str(o.CreatedAt().UTC().Format(time.RFC3339))
		})
		if receipt != "" {
			e.Field("receipt", func(e *jx.Encoder) { e.Str(receipt) })
		}
	})
}

func encodeLineItem(e *jx.Encoder, li order.LineItem) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("recipe", func(e *jx.Encoder) { e.Str(li.Recipe) })
		e.Field("name", func(e *jx.Encoder) { e.Str(li.Name) })
		e.Field("quantity", func(e *jx.Encoder) { e.Int(li.Quantity) })
		e.Field("unit_price", func(e *jx.Encoder) { e.Str(li.UnitPrice.String()) })
		e.Field("line_total", func(e *jx.Encoder) { e.Str(li.LineTotal().String()) })
	})
}

func encodePricing(e *jx.Encoder, res pricing.Result) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("subtotal", func(e *jx.Encoder) { e.Str(res.Subtotal.String()) })
		e.Field("discount", func(e *jx.Encoder) { e.Str(res.Discount.String()) })
		e.Field("tax", func(e *jx.Encoder) { e.Str(res.Tax.String()) })
		e.Field("total", func(e *jx.Encoder) { e.Str(res.Total.String()) })
	})
}
