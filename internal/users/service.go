package users

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ariefcatur/go-commerce.git/internal/apperr"
	"github.com/ariefcatur/go-commerce.git/internal/auth"
	"github.com/ariefcatur/go-commerce.git/internal/pagination"
)

// Store adalah kontrak repo yang dipakai Service (biar gampang di-fake di test).
type Store interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	List(ctx context.Context, email string, p pagination.Params) ([]User, int, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	Store Store
	Auth  *auth.Service
}

func (s *Service) Register(ctx context.Context, email, password string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return User{}, apperr.Invalidf("a valid email is required")
	}
	if len(password) < 6 {
		return User{}, apperr.Invalidf("password must be at least 6 characters")
	}

	hash, err := s.Auth.HashPassword(password)
	if err != nil {
		return User{}, err
	}

	u := User{ID: uuid.NewString(), Email: email, Password: hash}
	// unique index di email yang jadi kebenaran; repo menerjemahkan 23505 -> Conflict
	if err := s.Store.Create(ctx, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Login memverifikasi kredensial dan menerbitkan token dengan subject = email.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.Store.FindByEmail(ctx, email)
	if err != nil || !s.Auth.CheckPassword(u.Password, password) {
		return "", apperr.Unauthorizedf("invalid email or password")
	}
	return s.Auth.IssueToken(u.Email)
}

func (s *Service) List(ctx context.Context, email string, p pagination.Params) ([]User, pagination.Result, error) {
	p = p.Normalize()
	list, total, err := s.Store.List(ctx, email, p)
	if err != nil {
		return nil, pagination.Result{}, err
	}
	return list, pagination.NewResult(total, p), nil
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.Store.FindByID(ctx, id)
}

// Update mengganti email dan/atau password; password di-hash ulang.
func (s *Service) Update(ctx context.Context, id, email, password string) (User, error) {
	u, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if email != "" {
		u.Email = email
	}
	if password != "" {
		if len(password) < 6 {
			return User{}, apperr.Invalidf("password must be at least 6 characters")
		}
		hash, err := s.Auth.HashPassword(password)
		if err != nil {
			return User{}, err
		}
		u.Password = hash
	}
	if err := s.Store.Update(ctx, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Store.Delete(ctx, id)
}
