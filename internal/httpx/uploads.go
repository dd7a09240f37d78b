package httpx

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ariefcatur/go-commerce.git/internal/apperr"
)

const maxUploadBytes = 10 << 20

// saveUpload menyimpan file dari form field ke dir dengan nama acak dan
// mengembalikan path publiknya ("" kalau field tidak dikirim).
func saveUpload(r *http.Request, field, dir string) (string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", apperr.Invalidf("invalid multipart form")
	}
	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", apperr.Invalidf("invalid file field %q", field)
	}
	defer f.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + filepath.Ext(hdr.Filename)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, f); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// MountUploads serve file upload secara statis.
func MountUploads(r *chi.Mux, dir string) {
	fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(dir)))
	r.Get("/uploads/*", func(w http.ResponseWriter, req *http.Request) {
		fs.ServeHTTP(w, req)
	})
}
