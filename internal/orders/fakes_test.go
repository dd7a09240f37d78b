package orders_test

import (
	"context"
	"sync"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-commerce.git/internal/apperr"
	"github.com/ariefcatur/go-commerce.git/internal/catalog"
	"github.com/ariefcatur/go-commerce.git/internal/orders"
)

// memStore mengemulasi kontrak CartStore + OrderStore + OrderCreator di memori,
// termasuk semantik all-or-nothing pembuatan order.
type memStore struct {
	mu       sync.Mutex
	variants map[string]*catalog.Variant
	cart     []*orders.CartItem
	orders   map[string]*orders.Order
}

func newMemStore(vs ...catalog.Variant) *memStore {
	m := &memStore{
		variants: map[string]*catalog.Variant{},
		orders:   map[string]*orders.Order{},
	}
	for i := range vs {
		v := vs[i]
		m.variants[v.ID] = &v
	}
	return m
}

func (m *memStore) find(username, variantID string) *orders.CartItem {
	for _, it := range m.cart {
		if it.Username == username && it.VariantID == variantID {
			return it
		}
	}
	return nil
}

func (m *memStore) withVariant(it *orders.CartItem) orders.CartItem {
	out := *it
	if v, ok := m.variants[it.VariantID]; ok {
		cp := *v
		out.Variant = &cp
	}
	return out
}

func (m *memStore) Add(_ context.Context, username, variantID string, quantity int) (orders.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.variants[variantID]; !ok {
		return orders.CartItem{}, apperr.NotFoundf("variant not found")
	}
	if it := m.find(username, variantID); it != nil {
		it.Quantity += quantity
		return m.withVariant(it), nil
	}
	it := &orders.CartItem{Username: username, VariantID: variantID, Quantity: quantity}
	m.cart = append(m.cart, it)
	return m.withVariant(it), nil
}

func (m *memStore) Update(_ context.Context, username, variantID string, quantity int) (orders.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it := m.find(username, variantID)
	if it == nil {
		return orders.CartItem{}, apperr.NotFoundf("cart item not found")
	}
	it.Quantity = quantity
	return m.withVariant(it), nil
}

func (m *memStore) Remove(_ context.Context, username, variantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.cart {
		if it.Username == username && it.VariantID == variantID {
			m.cart = append(m.cart[:i], m.cart[i+1:]...)
			return nil
		}
	}
	return apperr.NotFoundf("cart item not found")
}

func (m *memStore) List(_ context.Context, username string) ([]orders.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []orders.CartItem
	for _, it := range m.cart {
		if it.Username == username {
			out = append(out, m.withVariant(it))
		}
	}
	return out, nil
}

func (m *memStore) CreateFromCheckout(_ context.Context, username string, items []orders.CheckoutItem) (orders.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// cek semua dulu: satu item kurang berarti tidak ada mutasi sama sekali
	for _, it := range items {
		v, ok := m.variants[it.VariantID]
		if !ok {
			return orders.Order{}, apperr.NotFoundf("variant %s no longer exists", it.VariantID)
		}
		if v.Stock < it.Quantity {
			return orders.Order{}, &orders.InsufficientStockError{
				VariantID: it.VariantID, Name: v.Name,
				Requested: it.Quantity, Available: v.Stock,
			}
		}
	}

	o := &orders.Order{ID: uuid.NewString(), Username: username, Status: orders.StatusPending}
	for _, it := range items {
		m.variants[it.VariantID].Stock -= it.Quantity
		o.TotalCents += it.Quantity * it.Variant.PriceCents
		o.Items = append(o.Items, orders.OrderItem{
			OrderID: o.ID, VariantID: it.VariantID,
			Quantity: it.Quantity, PriceCents: it.Variant.PriceCents,
		})
	}
	m.orders[o.ID] = o
	return *o, nil
}

func (m *memStore) MarkPaid(_ context.Context, username, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok || o.Username != username || o.Status != orders.StatusPending {
		return apperr.NotFoundf("order not found or already paid")
	}
	o.Status = orders.StatusPaid
	kept := m.cart[:0]
	for _, it := range m.cart {
		if it.Username != username {
			kept = append(kept, it)
		}
	}
	m.cart = kept
	return nil
}

func (m *memStore) GetStatus(_ context.Context, username, orderID string) (orders.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok || o.Username != username {
		return "", apperr.NotFoundf("order not found")
	}
	return o.Status, nil
}

func (m *memStore) stock(variantID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.variants[variantID].Stock
}

func (m *memStore) orderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

type fakePub struct {
	mu        sync.Mutex
	published []kafkago.Message
}

func (p *fakePub) Publish(key, value []byte, headers ...kafkago.Header) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, kafkago.Message{Key: key, Value: value, Headers: headers})
}
