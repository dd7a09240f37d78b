package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-commerce.git/internal/apperr"
	"github.com/ariefcatur/go-commerce.git/internal/auth"
	"github.com/ariefcatur/go-commerce.git/internal/catalog"
	"github.com/ariefcatur/go-commerce.git/internal/orders"
)

// fake store seadanya: satu user, satu variant.
type cartFake struct {
	items     map[string]int
	published int
}

func (f *cartFake) Add(_ context.Context, _, variantID string, qty int) (orders.CartItem, error) {
	if variantID != "v-1" {
		return orders.CartItem{}, apperr.NotFoundf("variant not found")
	}
	f.items[variantID] += qty
	return orders.CartItem{VariantID: variantID, Quantity: f.items[variantID]}, nil
}

func (f *cartFake) Update(_ context.Context, _, variantID string, qty int) (orders.CartItem, error) {
	if _, ok := f.items[variantID]; !ok {
		return orders.CartItem{}, apperr.NotFoundf("cart item not found")
	}
	f.items[variantID] = qty
	return orders.CartItem{VariantID: variantID, Quantity: qty}, nil
}

func (f *cartFake) Remove(_ context.Context, _, variantID string) error {
	delete(f.items, variantID)
	return nil
}

func (f *cartFake) List(_ context.Context, _ string) ([]orders.CartItem, error) {
	var out []orders.CartItem
	for id, qty := range f.items {
		out = append(out, orders.CartItem{
			VariantID: id, Quantity: qty,
			Variant: &catalog.Variant{ID: id, Name: "Kaos", PriceCents: 100, Stock: 100},
		})
	}
	return out, nil
}

func (f *cartFake) MarkPaid(context.Context, string, string) error { return nil }
func (f *cartFake) GetStatus(context.Context, string, string) (orders.Status, error) {
	return orders.StatusPending, nil
}
func (f *cartFake) Publish(_, _ []byte, _ ...kafkago.Header) { f.published++ }

func newOrdersRouter(f *cartFake, authSvc *auth.Service) http.Handler {
	h := &OrdersHandler{Svc: &orders.Service{Cart: f, Orders: f, Producer: f, Service: "shop-api"}}
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(Auth(authSvc.VerifyToken))
		h.Register(pr)
	})
	return r
}

func TestOrdersRoutes(t *testing.T) {
	authSvc := auth.New("rahasia")
	token, err := authSvc.IssueToken("budi@mail.com")
	require.NoError(t, err)

	f := &cartFake{items: map[string]int{}}
	router := newOrdersRouter(f, authSvc)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	// tanpa token ditolak duluan
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/cart", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(http.MethodPost, "/orders/cart", `{"variant_id":"v-1","quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(http.MethodPost, "/orders/cart", `{"variant_id":"v-404","quantity":1}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(http.MethodPost, "/orders/cart", `bukan json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(http.MethodPost, "/orders/cart", `{"variant_id":"v-1","quantity":0}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// checkout antri di queue, balas 202
	rec = do(http.MethodPost, "/orders/", "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, 1, f.published)

	rec = do(http.MethodGet, "/orders/some-id", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), string(orders.StatusPending))
}
