package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariefcatur/go-commerce.git/internal/apperr"
	"github.com/ariefcatur/go-commerce.git/internal/catalog"
)

type CartRepo struct{ DB *pgxpool.Pool }

// Add: upsert — baris baru pakai qty yang diminta, baris lama di-increment
// (tidak pernah overwrite).
func (r *CartRepo) Add(ctx context.Context, username, variantID string, quantity int) (CartItem, error) {
	var exists bool
	if err := r.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM variants WHERE id=$1)`, variantID).Scan(&exists); err != nil {
		return CartItem{}, err
	}
	if !exists {
		return CartItem{}, apperr.NotFoundf("variant not found")
	}

	item := CartItem{Username: username, VariantID: variantID}
	err := r.DB.QueryRow(ctx, `
		INSERT INTO cart_items(username, variant_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (username, variant_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING quantity, created_at, updated_at`,
		username, variantID, quantity,
	).Scan(&item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	return item, err
}

// Update: overwrite qty (bukan increment); NotFound kalau barisnya tidak ada.
func (r *CartRepo) Update(ctx context.Context, username, variantID string, quantity int) (CartItem, error) {
	item := CartItem{Username: username, VariantID: variantID}
	err := r.DB.QueryRow(ctx, `
		UPDATE cart_items SET quantity=$3, updated_at=now()
		WHERE username=$1 AND variant_id=$2
		RETURNING quantity, created_at, updated_at`,
		username, variantID, quantity,
	).Scan(&item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return CartItem{}, apperr.NotFoundf("cart item not found")
	}
	return item, err
}

func (r *CartRepo) Remove(ctx context.Context, username, variantID string) error {
	ct, err := r.DB.Exec(ctx, `
		DELETE FROM cart_items WHERE username=$1 AND variant_id=$2`, username, variantID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFoundf("cart item not found")
	}
	return nil
}

// List mengembalikan isi keranjang join data variant live.
func (r *CartRepo) List(ctx context.Context, username string) ([]CartItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT ci.username, ci.variant_id, ci.quantity, ci.created_at, ci.updated_at,
		       v.id, v.product_id, v.name, v.description, v.sku, v.price_cents, v.stock, v.image, v.created_at, v.updated_at
		FROM cart_items ci
		JOIN variants v ON v.id = ci.variant_id
		WHERE ci.username=$1
		ORDER BY ci.created_at`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CartItem
	for rows.Next() {
		var it CartItem
		var v catalog.Variant
		if err := rows.Scan(&it.Username, &it.VariantID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt,
			&v.ID, &v.ProductID, &v.Name, &v.Description, &v.SKU, &v.PriceCents, &v.Stock, &v.Image,
			&v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		it.Variant = &v
		out = append(out, it)
	}
	return out, rows.Err()
}
