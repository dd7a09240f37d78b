package users_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-commerce.git/internal/apperr"
	"github.com/ariefcatur/go-commerce.git/internal/auth"
	"github.com/ariefcatur/go-commerce.git/internal/pagination"
	"github.com/ariefcatur/go-commerce.git/internal/users"
)

type memUsers struct {
	byID map[string]users.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]users.User{}} }

func (m *memUsers) Create(_ context.Context, u *users.User) error {
	for _, ex := range m.byID {
		if ex.Email == u.Email {
			return apperr.Conflictf("email", "the value for email already exists, please use a different value")
		}
	}
	m.byID[u.ID] = *u
	return nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (users.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return users.User{}, apperr.NotFoundf("user not found")
}

func (m *memUsers) FindByID(_ context.Context, id string) (users.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return users.User{}, apperr.NotFoundf("user not found")
	}
	return u, nil
}

func (m *memUsers) List(_ context.Context, email string, p pagination.Params) ([]users.User, int, error) {
	var all []users.User
	for _, u := range m.byID {
		if email == "" || strings.Contains(u.Email, email) {
			all = append(all, u)
		}
	}
	return all, len(all), nil
}

func (m *memUsers) Update(_ context.Context, u *users.User) error {
	if _, ok := m.byID[u.ID]; !ok {
		return apperr.NotFoundf("user not found")
	}
	m.byID[u.ID] = *u
	return nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return apperr.NotFoundf("user not found")
	}
	delete(m.byID, id)
	return nil
}

func newUserService() *users.Service {
	return &users.Service{Store: newMemUsers(), Auth: auth.New("rahasia")}
}

func TestRegisterValidation(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "bukan-email", "password123")
	require.Equal(t, apperr.CodeInvalid, apperr.CodeOf(err))

	_, err = svc.Register(ctx, "budi@mail.com", "12345")
	require.Equal(t, apperr.CodeInvalid, apperr.CodeOf(err))
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := newUserService()
	u, err := svc.Register(context.Background(), "budi@mail.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.NotEqual(t, "password123", u.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "budi@mail.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "budi@mail.com", "password456")
	require.Equal(t, apperr.CodeConflict, apperr.CodeOf(err))
}

func TestLogin(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "budi@mail.com", "password123")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "budi@mail.com", "password123")
	require.NoError(t, err)

	// subject token = email, dipakai sebagai identitas di route protected
	sub, err := svc.Auth.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, "budi@mail.com", sub)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "budi@mail.com", "password123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "budi@mail.com", "salah")
	require.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))

	// user tak dikenal dibalas pesan yang sama: tidak membocorkan keberadaan email
	_, err = svc.Login(ctx, "siti@mail.com", "password123")
	require.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
	require.Equal(t, "invalid email or password", err.Error())
}

func TestUpdateRehashesPassword(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "budi@mail.com", "password123")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, u.ID, "", "password456")
	require.NoError(t, err)
	require.NotEqual(t, u.Password, updated.Password)

	_, err = svc.Login(ctx, "budi@mail.com", "password456")
	require.NoError(t, err)
}

func TestDeleteMissingUser(t *testing.T) {
	svc := newUserService()
	err := svc.Delete(context.Background(), "tidak-ada")
	require.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}
