package httpx

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/ariefcatur/go-commerce.git/internal/apperr"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// respond menulis envelope sukses {statusCode, message, ...data}.
func respond(w http.ResponseWriter, code int, message string, data map[string]any) {
	body := map[string]any{"statusCode": code, "message": message}
	for k, v := range data {
		body[k] = v
	}
	writeJSON(w, code, body)
}

func respondError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]any{
		"statusCode": code,
		"message":    message,
		"error":      http.StatusText(code),
	})
}

// respondErr memetakan taksonomi apperr ke status HTTP. Error tak terduga
// di-log dan keluar sebagai 500 generik tanpa bocorin internal.
func respondErr(w http.ResponseWriter, err error) {
	switch apperr.CodeOf(err) {
	case apperr.CodeInvalid, apperr.CodeConflict, apperr.CodeBusinessRule:
		respondError(w, http.StatusBadRequest, err.Error())
	case apperr.CodeNotFound:
		respondError(w, http.StatusNotFound, err.Error())
	case apperr.CodeUnauthorized:
		respondError(w, http.StatusUnauthorized, err.Error())
	default:
		log.Printf("httpx: internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
