package orders

import (
	"encoding/json"
	"time"
)

const (
	EventCheckoutRequested = "CheckoutRequested"
)

type Envelope struct {
	EventID      string          `json:"event_id"`      // uuid
	EventType    string          `json:"event_type"`    // e.g. CheckoutRequested
	EventVersion int             `json:"event_version"` // 1
	OccurredAt   time.Time       `json:"occurred_at"`   // RFC3339
	Producer     string          `json:"producer"`      // e.g. "shop-api"
	TraceID      string          `json:"trace_id,omitempty"`
	Payload      json.RawMessage `json:"payload"`
}

// VariantSnapshot adalah potret variant saat checkout diminta. Harga di sini
// yang dipakai worker utk total order; stok hanya advisory (worker cek ulang
// stok live di dalam transaksi).
type VariantSnapshot struct {
	Name       string `json:"name"`
	SKU        string `json:"sku"`
	PriceCents int    `json:"price_cents"`
	Stock      int    `json:"stock"`
}

type CheckoutItem struct {
	VariantID string          `json:"variant_id"`
	Quantity  int             `json:"quantity"`
	Variant   VariantSnapshot `json:"variant"`
}

type CheckoutRequestedPayload struct {
	Username string         `json:"username"`
	Items    []CheckoutItem `json:"items"`
}
