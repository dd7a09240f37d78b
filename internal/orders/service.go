package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-commerce.git/internal/apperr"
	kafkax "github.com/ariefcatur/go-commerce.git/internal/kafka"
	"github.com/ariefcatur/go-commerce.git/internal/redisx"
)

type CartStore interface {
	Add(ctx context.Context, username, variantID string, quantity int) (CartItem, error)
	Update(ctx context.Context, username, variantID string, quantity int) (CartItem, error)
	Remove(ctx context.Context, username, variantID string) error
	List(ctx context.Context, username string) ([]CartItem, error)
}

type OrderStore interface {
	MarkPaid(ctx context.Context, username, orderID string) error
	GetStatus(ctx context.Context, username, orderID string) (Status, error)
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Service = cart manager + checkout initiator + payment finalizer.
// Dependensi di-inject eksplisit (tidak ada singleton proses).
type Service struct {
	Cart     CartStore
	Orders   OrderStore
	Producer Publisher
	Redis    *redis.Client // optional: cache status order
	Service  string        // nama producer utk envelope
}

func (s *Service) GetCart(ctx context.Context, username string) ([]CartItem, error) {
	return s.Cart.List(ctx, username)
}

func (s *Service) AddToCart(ctx context.Context, username, variantID string, quantity int) (CartItem, error) {
	if quantity < 1 {
		return CartItem{}, apperr.Invalidf("quantity must be at least 1")
	}
	return s.Cart.Add(ctx, username, variantID, quantity)
}

func (s *Service) UpdateCartItem(ctx context.Context, username, variantID string, quantity int) (CartItem, error) {
	if quantity < 1 {
		return CartItem{}, apperr.Invalidf("quantity must be at least 1")
	}
	return s.Cart.Update(ctx, username, variantID, quantity)
}

func (s *Service) RemoveCartItem(ctx context.Context, username, variantID string) error {
	return s.Cart.Remove(ctx, username, variantID)
}

// Checkout membaca keranjang, validasi advisory terhadap stok live, lalu
// publish SATU pesan ke queue dan langsung return — pembuatan order terjadi
// asinkron di worker. Cek stok di sini cuma penolakan dini yang murah; cek
// otoritatif ada di worker (stok bisa berubah di antara keduanya).
func (s *Service) Checkout(ctx context.Context, username string) error {
	items, err := s.Cart.List(ctx, username)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return apperr.Invalidf("cart is empty")
	}

	payload := CheckoutRequestedPayload{Username: username}
	for _, it := range items {
		if it.Quantity > it.Variant.Stock {
			return apperr.Invalidf("insufficient stock for variant %q: available stock %d",
				it.Variant.Name, it.Variant.Stock)
		}
		payload.Items = append(payload.Items, CheckoutItem{
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			Variant: VariantSnapshot{
				Name:       it.Variant.Name,
				SKU:        it.Variant.SKU,
				PriceCents: it.Variant.PriceCents,
				Stock:      it.Variant.Stock,
			},
		})
	}

	ev := Envelope{
		EventID:      uuid.NewString(),
		EventType:    EventCheckoutRequested,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     s.Service,
		Payload:      kafkax.MustMarshal(payload),
	}
	s.Producer.Publish(PartitionKey(username), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventCheckoutRequested)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
	return nil
}

// ProcessPayment: status-flip pending->paid (tidak ada gateway pembayaran).
func (s *Service) ProcessPayment(ctx context.Context, username, orderID string) error {
	if err := s.Orders.MarkPaid(ctx, username, orderID); err != nil {
		return err
	}
	if s.Redis != nil {
		key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
		_ = s.Redis.Set(ctx, key, fmt.Sprintf(`{"status":%q}`, StatusPaid), redisx.TTLStatusCache).Err()
	}
	return nil
}

// GetOrderStatus baca DB (scoped ke pemilik) lalu refresh cache status.
// Cache tidak dibaca di sini karena key-nya tidak menyimpan pemilik order.
func (s *Service) GetOrderStatus(ctx context.Context, username, orderID string) (Status, error) {
	status, err := s.Orders.GetStatus(ctx, username, orderID)
	if err != nil {
		return "", err
	}
	if s.Redis != nil {
		key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
		_ = s.Redis.Set(ctx, key, fmt.Sprintf(`{"status":%q}`, status), redisx.TTLStatusCache).Err()
	}
	return status, nil
}
