package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-commerce.git/internal/apperr"
	"github.com/ariefcatur/go-commerce.git/internal/auth"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRespondErrMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.Invalidf("quantity must be at least 1"), http.StatusBadRequest},
		{apperr.Conflictf("email", "the value for email already exists, please use a different value"), http.StatusBadRequest},
		{apperr.BusinessRulef("stock cannot be negative"), http.StatusBadRequest},
		{apperr.NotFoundf("order not found"), http.StatusNotFound},
		{apperr.Unauthorizedf("invalid email or password"), http.StatusUnauthorized},
		{errors.New("pq: connection refused"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		respondErr(rec, c.err)
		require.Equal(t, c.want, rec.Code)

		body := decodeBody(t, rec)
		require.Equal(t, float64(c.want), body["statusCode"])
		if c.want == http.StatusInternalServerError {
			// detail internal tidak boleh bocor ke client
			require.Equal(t, "internal server error", body["message"])
		} else {
			require.Equal(t, c.err.Error(), body["message"])
		}
	}
}

func TestRespondEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	respond(rec, http.StatusAccepted, "checkout request has been queued for processing", map[string]any{"data": []int{}})

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decodeBody(t, rec)
	require.Equal(t, float64(202), body["statusCode"])
	require.Contains(t, body, "data")
}

func TestAuthMiddleware(t *testing.T) {
	authSvc := auth.New("rahasia")
	token, err := authSvc.IssueToken("budi@mail.com")
	require.NoError(t, err)

	var gotUser string
	handler := Auth(authSvc.VerifyToken)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = Username(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	// tanpa header
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/cart", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// token rusak
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/cart", nil)
	req.Header.Set("Authorization", "Bearer token-palsu")
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// token valid: username masuk context
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/orders/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "budi@mail.com", gotUser)
}

func TestUsernameWithoutGuard(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Equal(t, "", Username(req.Context()))
}
