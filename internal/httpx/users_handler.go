package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-commerce.git/internal/pagination"
	"github.com/ariefcatur/go-commerce.git/internal/users"
)

type UsersHandler struct {
	Svc *users.Service
}

// RegisterPublic: registrasi tidak butuh token.
func (h *UsersHandler) RegisterPublic(r chi.Router) {
	r.Post("/users/register", h.register)
}

func (h *UsersHandler) RegisterProtected(r chi.Router) {
	r.Get("/users", h.list)
	r.Get("/users/{id}", h.get)
	r.Put("/users/{id}", h.update)
	r.Delete("/users/{id}", h.delete)
}

func pageParams(r *http.Request) pagination.Params {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return pagination.Params{Page: page, Limit: limit}
}

func (h *UsersHandler) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	u, err := h.Svc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, "user registered successfully", map[string]any{"data": u})
}

func (h *UsersHandler) list(w http.ResponseWriter, r *http.Request) {
	list, pg, err := h.Svc.List(r.Context(), r.URL.Query().Get("email"), pageParams(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, "successfully retrieved users", map[string]any{
		"pagination": pg,
		"data":       list,
	})
}

func (h *UsersHandler) get(w http.ResponseWriter, r *http.Request) {
	u, err := h.Svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, "successfully retrieved user", map[string]any{"data": u})
}

func (h *UsersHandler) update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	u, err := h.Svc.Update(r.Context(), chi.URLParam(r, "id"), req.Email, req.Password)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, "user updated successfully", map[string]any{"data": u})
}

func (h *UsersHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, "user deleted successfully", nil)
}
