// Package apperr adalah taksonomi error lintas layer: service/repo mengembalikan
// *Error, layer HTTP memetakan Code ke status response.
package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

type Code string

const (
	CodeInvalid      Code = "invalid"       // input malformed / melanggar validasi
	CodeNotFound     Code = "not_found"     // resource tidak ada
	CodeConflict     Code = "conflict"      // unique constraint (email/sku/nama kategori)
	CodeBusinessRule Code = "business_rule" // stok tidak cukup, kategori masih dipakai, dst
	CodeUnauthorized Code = "unauthorized"  // kredensial/token salah
	CodeInternal     Code = "internal"
)

type Error struct {
	Code    Code
	Message string
	Field   string // diisi untuk Conflict: field yang bentrok
}

func (e *Error) Error() string { return e.Message }

func Invalidf(format string, args ...any) *Error {
	return &Error{Code: CodeInvalid, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(field, format string, args ...any) *Error {
	return &Error{Code: CodeConflict, Field: field, Message: fmt.Sprintf(format, args...)}
}

func BusinessRulef(format string, args ...any) *Error {
	return &Error{Code: CodeBusinessRule, Message: fmt.Sprintf(format, args...)}
}

func Unauthorizedf(format string, args ...any) *Error {
	return &Error{Code: CodeUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// CodeOf mengembalikan Code dari err; error tak dikenal dianggap internal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// FromPG menerjemahkan unique violation (SQLSTATE 23505) jadi Conflict dengan
// nama field dari constraint (users_email_key -> email). Error lain lewat apa adanya.
func FromPG(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		field := fieldFromConstraint(pgErr.ConstraintName)
		return Conflictf(field, "the value for %s already exists, please use a different value", field)
	}
	return err
}

func fieldFromConstraint(name string) string {
	s := strings.TrimSuffix(name, "_key")
	if i := strings.Index(s, "_"); i >= 0 {
		return s[i+1:]
	}
	return s
}
