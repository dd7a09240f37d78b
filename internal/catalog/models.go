package catalog

import "time"

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CategoryID  *string   `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Category    *Category `json:"category,omitempty"`
	Variants    []Variant `json:"variants,omitempty"`
}

// Variant adalah SKU yang bisa dibeli; harga dalam satuan terkecil (cents).
// Stok hanya berubah lewat decrement checkout worker dan stock opname.
type Variant struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SKU         string    `json:"sku"`
	PriceCents  int       `json:"price_cents"`
	Stock       int       `json:"stock"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StockOpname adalah baris audit append-only utk penyesuaian stok manual.
type StockOpname struct {
	ID         string    `json:"id"`
	VariantID  string    `json:"variant_id"`
	Adjustment int       `json:"adjustment"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}
