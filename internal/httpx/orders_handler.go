package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-commerce.git/internal/orders"
)

type OrdersHandler struct {
	Svc *orders.Service
}

// Register: semua route order/cart di-guard; identitas dari token.
func (h *OrdersHandler) Register(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/cart", h.getCart)
		r.Post("/cart", h.addToCart)
		r.Patch("/cart", h.updateCartItem)
		r.Delete("/cart", h.removeCartItem)
		r.Post("/", h.checkout)
		r.Post("/payment", h.payment)
		r.Get("/{id}", h.getOrder)
	})
}

func (h *OrdersHandler) getCart(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.GetCart(r.Context(), Username(r.Context()))
	if err != nil {
		respondErr(w, err)
		return
	}
	if items == nil {
		items = []orders.CartItem{}
	}
	respond(w, http.StatusOK, "successfully retrieved cart", map[string]any{"data": items})
}

type cartItemReq struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

func (h *OrdersHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req cartItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	item, err := h.Svc.AddToCart(r.Context(), Username(r.Context()), req.VariantID, req.Quantity)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, "item added to cart", map[string]any{"data": item})
}

func (h *OrdersHandler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	item, err := h.Svc.UpdateCartItem(r.Context(), Username(r.Context()), req.VariantID, req.Quantity)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, "cart item updated successfully", map[string]any{"data": item})
}

func (h *OrdersHandler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VariantID string `json:"variant_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.Svc.RemoveCartItem(r.Context(), Username(r.Context()), req.VariantID); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, "cart item removed successfully", nil)
}

// checkout balas 202: permintaan diterima, order dibuat asinkron oleh worker.
func (h *OrdersHandler) checkout(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Checkout(r.Context(), Username(r.Context())); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusAccepted, "checkout request has been queued for processing", nil)
}

func (h *OrdersHandler) payment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID string `json:"order_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.Svc.ProcessPayment(r.Context(), Username(r.Context()), req.OrderID); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, "payment successful", nil)
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	status, err := h.Svc.GetOrderStatus(r.Context(), Username(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, "successfully retrieved order", map[string]any{"status": status})
}
