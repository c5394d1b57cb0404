package handler

import (
	"net/http"

	"github.com/go-faster/jx"

	"github.com/xenking/cafepos/internal/domain/catalog"
)

// ListProducts returns the fixed catalog: base drinks and the addons that can
// decorate them.
func (h *Handler) ListProducts(w http.ResponseWriter, _ *http.Request) {
	e := &jx.Encoder{}
	e.Obj(func(e *jx.Encoder) {
		e.Field("products", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, b := range h.catalog.Bases() {
					encodeBase(e, b)
				}
			})
		})
		e.Field("addons", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, a := range h.catalog.Addons() {
					encodeAddon(e, a)
				}
			})
		})
	})
	writeJSON(w, http.StatusOK, e)
}

func encodeBase(e *jx.Encoder, b catalog.BaseInfo) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Str(b.Code) })
		e.Field("id", func(e *jx.Encoder) { e.Str(b.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(b.Name) })
		e.Field("price", func(e *jx.Encoder) { e.Str(b.Price.String()) })
	})
}

func encodeAddon(e *jx.Encoder, a catalog.AddonInfo) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Str(a.Code) })
		e.Field("name", func(e *jx.Encoder) { e.Str(a.Name) })
		e.Field("price", func(e *jx.Encoder) { e.Str(a.Delta.String()) })
	})
}
