package orders

import (
	"time"

	"github.com/ariefcatur/go-commerce.git/internal/catalog"
)

// CartItem di-keyed (username, variant_id); Variant adalah data live hasil join
// (harga/stok bisa sudah berubah sejak item masuk keranjang — checkout re-validasi).
type CartItem struct {
	Username  string           `json:"username"`
	VariantID string           `json:"variant_id"`
	Quantity  int              `json:"quantity"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Variant   *catalog.Variant `json:"variant,omitempty"`
}

type Order struct {
	ID         string      `json:"id"`
	Username   string      `json:"username"`
	TotalCents int         `json:"total_cents"`
	Status     Status      `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	Items      []OrderItem `json:"items,omitempty"`
}

// OrderItem menyimpan snapshot harga saat order dibuat, lepas dari perubahan
// harga variant setelahnya.
type OrderItem struct {
	OrderID    string `json:"order_id"`
	VariantID  string `json:"variant_id"`
	Quantity   int    `json:"quantity"`
	PriceCents int    `json:"price_cents"`
}
