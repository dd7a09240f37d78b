package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariefcatur/go-commerce.git/internal/apperr"
)

// InsufficientStockError menunjuk variant pertama yang stoknya kurang saat
// worker memproses checkout.
type InsufficientStockError struct {
	VariantID string
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for variant %q: requested %d, available %d",
		e.Name, e.Requested, e.Available)
}

type Repo struct{ DB *pgxpool.Pool }

// CreateFromCheckout membuat order + order items dan mengurangi stok dalam SATU
// transaksi. Total dihitung dari harga snapshot di payload; stok dicek ulang
// live dengan lock baris (FOR UPDATE) supaya dua checkout konkuren atas variant
// yang sama tidak oversell. Ada satu item yang kurang -> seluruh transaksi
// rollback (tidak ada partial order).
func (r *Repo) CreateFromCheckout(ctx context.Context, username string, items []CheckoutItem) (Order, error) {
	total := 0
	for _, it := range items {
		total += it.Quantity * it.Variant.PriceCents
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback(ctx)

	order := Order{
		ID:         uuid.NewString(),
		Username:   username,
		TotalCents: total,
		Status:     StatusPending,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders(id, username, total_cents, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		order.ID, order.Username, order.TotalCents, order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return Order{}, err
	}

	for _, it := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(order_id, variant_id, quantity, price_cents)
			VALUES ($1, $2, $3, $4)`,
			order.ID, it.VariantID, it.Quantity, it.Variant.PriceCents); err != nil {
			return Order{}, err
		}
		order.Items = append(order.Items, OrderItem{
			OrderID: order.ID, VariantID: it.VariantID,
			Quantity: it.Quantity, PriceCents: it.Variant.PriceCents,
		})

		// cek stok otoritatif: lock baris -> bandingkan -> kurangi
		var name string
		var stock int
		err := tx.QueryRow(ctx, `SELECT name, stock FROM variants WHERE id=$1 FOR UPDATE`, it.VariantID).
			Scan(&name, &stock)
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, apperr.NotFoundf("variant %s no longer exists", it.VariantID)
		}
		if err != nil {
			return Order{}, err
		}
		if stock < it.Quantity {
			return Order{}, &InsufficientStockError{
				VariantID: it.VariantID, Name: name,
				Requested: it.Quantity, Available: stock,
			}
		}
		if _, err := tx.Exec(ctx, `
			UPDATE variants SET stock = stock - $2, updated_at = now() WHERE id=$1`,
			it.VariantID, it.Quantity); err != nil {
			return Order{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, err
	}
	return order, nil
}

// MarkPaid: transisi pending->paid + hapus SEMUA isi keranjang user, satu
// transaksi. Order tidak ada / sudah paid tidak dibedakan: dua-duanya NotFound.
func (r *Repo) MarkPaid(ctx context.Context, username, orderID string) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var id string
	err = tx.QueryRow(ctx, `
		SELECT id FROM orders
		WHERE id=$1 AND username=$2 AND status=$3
		FOR UPDATE`, orderID, username, StatusPending).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFoundf("order not found or already paid")
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE orders SET status=$2, updated_at=now() WHERE id=$1`, orderID, StatusPaid); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE username=$1`, username); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetStatus scoped ke pemilik order.
func (r *Repo) GetStatus(ctx context.Context, username, orderID string) (Status, error) {
	var s string
	err := r.DB.QueryRow(ctx, `
		SELECT status FROM orders WHERE id=$1 AND username=$2`, orderID, username).Scan(&s)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperr.NotFoundf("order not found")
	}
	if err != nil {
		return "", err
	}
	return Status(s), nil
}
