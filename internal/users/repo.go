package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariefcatur/go-commerce.git/internal/apperr"
	"github.com/ariefcatur/go-commerce.git/internal/pagination"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Create(ctx context.Context, u *User) error {
	err := r.DB.QueryRow(ctx, `
		INSERT INTO users(id, email, password)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`,
		u.ID, u.Email, u.Password,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	return apperr.FromPG(err)
}

func (r *Repo) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.DB.QueryRow(ctx, `
		SELECT id, email, password, created_at, updated_at
		FROM users WHERE email=$1`, email,
	).Scan(&u.ID, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperr.NotFoundf("user not found")
	}
	return u, err
}

func (r *Repo) FindByID(ctx context.Context, id string) (User, error) {
	var u User
	err := r.DB.QueryRow(ctx, `
		SELECT id, email, password, created_at, updated_at
		FROM users WHERE id=$1`, id,
	).Scan(&u.ID, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperr.NotFoundf("user not found")
	}
	return u, err
}

func (r *Repo) List(ctx context.Context, email string, p pagination.Params) ([]User, int, error) {
	where := ""
	args := []any{}
	if email != "" {
		where = `WHERE email ILIKE $1`
		args = append(args, "%"+email+"%")
	}

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM users `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, email, password, created_at, updated_at
		FROM users %s ORDER BY created_at
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	rows, err := r.DB.Query(ctx, query, append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (r *Repo) Update(ctx context.Context, u *User) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE users SET email=$2, password=$3, updated_at=now()
		WHERE id=$1`, u.ID, u.Email, u.Password)
	if err != nil {
		return apperr.FromPG(err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFoundf("user not found")
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFoundf("user not found")
	}
	return nil
}
