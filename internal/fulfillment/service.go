// Package fulfillment adalah sisi konsumen pipeline checkout: satu pesan =
// satu percobaan pembuatan order. Gagal proses bersifat terminal per pesan
// (log-only, tanpa retry/dead-letter) — gap reliability yang disengaja.
package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-commerce.git/internal/kafka"
	"github.com/ariefcatur/go-commerce.git/internal/orders"
	"github.com/ariefcatur/go-commerce.git/internal/redisx"
)

type OrderCreator interface {
	CreateFromCheckout(ctx context.Context, username string, items []orders.CheckoutItem) (orders.Order, error)
}

type Service struct {
	Orders      OrderCreator
	Redis       *redis.Client // optional: dedup event + cache status
	ServiceName string
}

// HandleCheckoutRequested dipasang sebagai handler consumer.
//
// Selalu return nil supaya offset di-commit: transport-nya at-least-once, dan
// kebijakan error di sini log-only — pesan yang gagal tidak di-redeliver dan
// tidak masuk dead letter. Checkout yang gagal (mis. stok habis persis saat
// diproses) hilang tanpa order; user tahu lewat polling status.
func (s *Service) HandleCheckoutRequested(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		log.Printf("fulfillment: bad envelope, dropping: %v", err)
		return nil
	}
	if env.EventType != orders.EventCheckoutRequested {
		return nil // ignore
	}

	// dedup utk redelivery pesan yang sama (at-least-once)
	if s.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyDedup, "fulfillment", env.EventID)
		if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
			return nil
		}
		_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	}

	p, err := kafkax.UnwrapPayload[orders.CheckoutRequestedPayload](env.Payload)
	if err != nil {
		log.Printf("fulfillment: bad payload, dropping: %v", err)
		return nil
	}
	if p.Username == "" || len(p.Items) == 0 {
		log.Printf("fulfillment: empty checkout payload, dropping (event_id=%s)", env.EventID)
		return nil
	}

	order, err := s.Orders.CreateFromCheckout(ctx, p.Username, p.Items)
	if err != nil {
		log.Printf("fulfillment: checkout for user %s failed, message dropped: %v", p.Username, err)
		return nil
	}

	if s.Redis != nil {
		key := fmt.Sprintf(redisx.KeyOrderStatus, order.ID)
		_ = s.Redis.Set(ctx, key, fmt.Sprintf(`{"status":%q}`, order.Status), redisx.TTLStatusCache).Err()
	}
	log.Printf("fulfillment: order %s created for user %s, total=%d", order.ID, p.Username, order.TotalCents)
	return nil
}
