package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	require.Equal(t, CodeInvalid, CodeOf(Invalidf("x")))
	require.Equal(t, CodeNotFound, CodeOf(NotFoundf("x")))
	require.Equal(t, CodeBusinessRule, CodeOf(BusinessRulef("x")))
	require.Equal(t, CodeUnauthorized, CodeOf(Unauthorizedf("x")))
	require.Equal(t, CodeInternal, CodeOf(errors.New("boom")))

	// tetap kebaca walau dibungkus
	wrapped := fmt.Errorf("outer: %w", NotFoundf("inner"))
	require.Equal(t, CodeNotFound, CodeOf(wrapped))
}

func TestFromPGUniqueViolation(t *testing.T) {
	err := FromPG(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, CodeConflict, e.Code)
	require.Equal(t, "email", e.Field)

	err = FromPG(&pgconn.PgError{Code: "23505", ConstraintName: "variants_sku_key"})
	require.ErrorAs(t, err, &e)
	require.Equal(t, "sku", e.Field)
}

func TestFromPGPassThrough(t *testing.T) {
	orig := errors.New("connection refused")
	require.Same(t, orig, FromPG(orig))

	other := &pgconn.PgError{Code: "23503"}
	require.Equal(t, error(other), FromPG(other))
}
