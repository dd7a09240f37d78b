package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariefcatur/go-commerce.git/internal/apperr"
	"github.com/ariefcatur/go-commerce.git/internal/pagination"
)

// Filter dengan field opsional eksplisit; string kosong = tidak difilter.
type ProductFilter struct {
	Title      string
	CategoryID string
	pagination.Params
}

type VariantFilter struct {
	SKU       string
	ProductID string
	pagination.Params
}

type CategoryFilter struct {
	Name string
	pagination.Params
}

type Repo struct{ DB *pgxpool.Pool }

// ---- products ----

// CreateProduct menyimpan produk + nested variants dalam satu transaksi.
func (r *Repo) CreateProduct(ctx context.Context, p *Product) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	p.ID = uuid.NewString()
	err = tx.QueryRow(ctx, `
		INSERT INTO products(id, title, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		p.ID, p.Title, p.Description, p.CategoryID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return apperr.FromPG(err)
	}

	for i := range p.Variants {
		v := &p.Variants[i]
		v.ID = uuid.NewString()
		v.ProductID = p.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO variants(id, product_id, name, description, sku, price_cents, stock, image)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING created_at, updated_at`,
			v.ID, v.ProductID, v.Name, v.Description, v.SKU, v.PriceCents, v.Stock, v.Image,
		).Scan(&v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return apperr.FromPG(err)
		}
	}

	return tx.Commit(ctx)
}

func (r *Repo) ListProducts(ctx context.Context, f ProductFilter) ([]Product, int, error) {
	where := "WHERE 1=1"
	args := []any{}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		where += fmt.Sprintf(" AND category_id=$%d", len(args))
	}
	if f.Title != "" {
		args = append(args, "%"+f.Title+"%")
		where += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.title, p.description, p.category_id, p.created_at, p.updated_at,
		       c.id, c.name, c.image, c.created_at, c.updated_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		%s ORDER BY p.created_at
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	rows, err := r.DB.Query(ctx, query, append(args, f.Limit, f.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		var c Category
		var cid, cname, cimage *string
		var ccreated, cupdated *time.Time
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt,
			&cid, &cname, &cimage, &ccreated, &cupdated); err != nil {
			return nil, 0, err
		}
		if cid != nil {
			c.ID, c.Name = *cid, *cname
			if cimage != nil {
				c.Image = *cimage
			}
			if ccreated != nil {
				c.CreatedAt = *ccreated
			}
			if cupdated != nil {
				c.UpdatedAt = *cupdated
			}
			p.Category = &c
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachVariants(ctx, out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *Repo) GetProduct(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.DB.QueryRow(ctx, `
		SELECT id, title, description, category_id, created_at, updated_at
		FROM products WHERE id=$1`, id,
	).Scan(&p.ID, &p.Title, &p.Description, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, apperr.NotFoundf("product not found")
	}
	if err != nil {
		return Product{}, err
	}
	single := []Product{p}
	if err := r.attachVariants(ctx, single); err != nil {
		return Product{}, err
	}
	return single[0], nil
}

// ProductUpdate: nil = field tidak diubah; Variants di-upsert per sku.
type ProductUpdate struct {
	Title       *string
	Description *string
	CategoryID  *string
	Variants    []Variant
}

func (r *Repo) UpdateProduct(ctx context.Context, id string, upd ProductUpdate) (Product, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return Product{}, err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `
		UPDATE products SET
			title       = COALESCE($2, title),
			description = COALESCE($3, description),
			category_id = COALESCE($4, category_id),
			updated_at  = now()
		WHERE id=$1`, id, upd.Title, upd.Description, upd.CategoryID)
	if err != nil {
		return Product{}, apperr.FromPG(err)
	}
	if ct.RowsAffected() == 0 {
		return Product{}, apperr.NotFoundf("product not found")
	}

	for _, v := range upd.Variants {
		_, err = tx.Exec(ctx, `
			INSERT INTO variants(id, product_id, name, description, sku, price_cents, stock, image)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (sku) DO UPDATE SET
				name        = EXCLUDED.name,
				description = EXCLUDED.description,
				price_cents = EXCLUDED.price_cents,
				stock       = EXCLUDED.stock,
				image       = EXCLUDED.image,
				updated_at  = now()`,
			uuid.NewString(), id, v.Name, v.Description, v.SKU, v.PriceCents, v.Stock, v.Image)
		if err != nil {
			return Product{}, apperr.FromPG(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Product{}, err
	}
	return r.GetProduct(ctx, id)
}

func (r *Repo) DeleteProduct(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFoundf("product not found")
	}
	return nil
}

// attachVariants memuat variants utk sekumpulan produk dalam satu query.
func (r *Repo) attachVariants(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]string, len(products))
	byID := make(map[string]*Product, len(products))
	for i := range products {
		ids[i] = products[i].ID
		byID[products[i].ID] = &products[i]
	}

	rows, err := r.DB.Query(ctx, `
		SELECT id, product_id, name, description, sku, price_cents, stock, image, created_at, updated_at
		FROM variants WHERE product_id = ANY($1::uuid[]) ORDER BY sku`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Description, &v.SKU,
			&v.PriceCents, &v.Stock, &v.Image, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return err
		}
		if p, ok := byID[v.ProductID]; ok {
			p.Variants = append(p.Variants, v)
		}
	}
	return rows.Err()
}

// ---- variants ----

func (r *Repo) ListVariants(ctx context.Context, f VariantFilter) ([]Variant, int, error) {
	where := "WHERE 1=1"
	args := []any{}
	if f.SKU != "" {
		args = append(args, "%"+f.SKU+"%")
		where += fmt.Sprintf(" AND sku ILIKE $%d", len(args))
	}
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		where += fmt.Sprintf(" AND product_id=$%d", len(args))
	}

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM variants `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, product_id, name, description, sku, price_cents, stock, image, created_at, updated_at
		FROM variants %s ORDER BY sku
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	rows, err := r.DB.Query(ctx, query, append(args, f.Limit, f.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Variant
	for rows.Next() {
		var v Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Description, &v.SKU,
			&v.PriceCents, &v.Stock, &v.Image, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, rows.Err()
}

// ---- categories ----

func (r *Repo) ListCategories(ctx context.Context, f CategoryFilter) ([]Category, int, error) {
	where := ""
	args := []any{}
	if f.Name != "" {
		where = `WHERE name ILIKE $1`
		args = append(args, "%"+f.Name+"%")
	}

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM categories `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, name, image, created_at, updated_at
		FROM categories %s ORDER BY name
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	rows, err := r.DB.Query(ctx, query, append(args, f.Limit, f.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Image, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (r *Repo) CreateCategory(ctx context.Context, c *Category) error {
	c.ID = uuid.NewString()
	err := r.DB.QueryRow(ctx, `
		INSERT INTO categories(id, name, image)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`,
		c.ID, c.Name, c.Image,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	return apperr.FromPG(err)
}

func (r *Repo) UpdateCategory(ctx context.Context, id string, name, image *string) (Category, error) {
	var c Category
	err := r.DB.QueryRow(ctx, `
		UPDATE categories SET
			name       = COALESCE($2, name),
			image      = COALESCE($3, image),
			updated_at = now()
		WHERE id=$1
		RETURNING id, name, image, created_at, updated_at`,
		id, name, image,
	).Scan(&c.ID, &c.Name, &c.Image, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, apperr.NotFoundf("category not found")
	}
	return c, apperr.FromPG(err)
}

// DeleteCategory menolak hapus selama masih ada produk yang menunjuk kategori ini.
func (r *Repo) DeleteCategory(ctx context.Context, id string) error {
	var n int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id=$1`, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return apperr.BusinessRulef("category cannot be deleted because it is associated with products")
	}
	ct, err := r.DB.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFoundf("category not found")
	}
	return nil
}

// ---- stock opname ----

// AdjustStock: lock baris variant (FOR UPDATE) -> hitung stok baru -> update +
// tulis baris audit, semua dalam satu transaksi. Gagal di tengah = tidak ada
// yang ter-persist (stok dan audit tidak boleh mismatch).
func (r *Repo) AdjustStock(ctx context.Context, variantID string, adjustment int, reason string) (Variant, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return Variant{}, err
	}
	defer tx.Rollback(ctx)

	var v Variant
	err = tx.QueryRow(ctx, `
		SELECT id, product_id, name, description, sku, price_cents, stock, image, created_at, updated_at
		FROM variants WHERE id=$1 FOR UPDATE`, variantID,
	).Scan(&v.ID, &v.ProductID, &v.Name, &v.Description, &v.SKU,
		&v.PriceCents, &v.Stock, &v.Image, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Variant{}, apperr.NotFoundf("variant not found")
	}
	if err != nil {
		return Variant{}, err
	}

	newStock, err := applyAdjustment(v.Stock, adjustment)
	if err != nil {
		return Variant{}, err
	}

	if _, err := tx.Exec(ctx, `UPDATE variants SET stock=$2, updated_at=now() WHERE id=$1`, variantID, newStock); err != nil {
		return Variant{}, err
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO stock_opnames(id, variant_id, adjustment, reason)
		VALUES ($1, $2, $3, $4)`,
		uuid.NewString(), variantID, adjustment, reason); err != nil {
		return Variant{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Variant{}, err
	}
	v.Stock = newStock
	return v, nil
}
