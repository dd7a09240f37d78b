package httpx

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-commerce.git/internal/apperr"
	"github.com/ariefcatur/go-commerce.git/internal/catalog"
	"github.com/ariefcatur/go-commerce.git/internal/pagination"
)

type CatalogHandler struct {
	Repo      *catalog.Repo
	UploadDir string
}

func (h *CatalogHandler) RegisterPublic(r chi.Router) {
	r.Get("/products", h.listProducts)
	r.Get("/products/variants", h.listVariants)
	r.Get("/products/categories", h.listCategories)
	r.Get("/products/{id}", h.getProduct)
	r.Get("/categories", h.listCategories)
	r.Get("/variants", h.listVariants)
}

func (h *CatalogHandler) RegisterProtected(r chi.Router) {
	r.Post("/products", h.createProduct)
	r.Patch("/products/{id}", h.updateProduct)
	r.Delete("/products/{id}", h.deleteProduct)
	r.Post("/products/stock-opname", h.stockOpname)

	// alias nested + top-level, paritas dengan surface lama
	for _, prefix := range []string{"/products/categories", "/categories"} {
		r.Post(prefix, h.createCategory)
		r.Patch(prefix+"/{id}", h.updateCategory)
		r.Delete(prefix+"/{id}", h.deleteCategory)
	}
}

// ---- products ----

type variantReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SKU         string `json:"sku"`
	PriceCents  int    `json:"price_cents"`
	Stock       int    `json:"stock"`
	Image       string `json:"image"`
}

func (v variantReq) validate() error {
	if v.Name == "" || v.SKU == "" {
		return apperr.Invalidf("variant name and sku are required")
	}
	if v.PriceCents < 0 || v.Stock < 0 {
		return apperr.Invalidf("variant price and stock must not be negative")
	}
	return nil
}

func (h *CatalogHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string       `json:"title"`
		Description string       `json:"description"`
		CategoryID  *string      `json:"category_id"`
		Variants    []variantReq `json:"variants"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Title == "" {
		respondErr(w, apperr.Invalidf("title is required"))
		return
	}

	p := catalog.Product{Title: req.Title, Description: req.Description, CategoryID: req.CategoryID}
	for _, v := range req.Variants {
		if err := v.validate(); err != nil {
			respondErr(w, err)
			return
		}
		p.Variants = append(p.Variants, catalog.Variant{
			Name: v.Name, Description: v.Description, SKU: v.SKU,
			PriceCents: v.PriceCents, Stock: v.Stock, Image: v.Image,
		})
	}

	if err := h.Repo.CreateProduct(r.Context(), &p); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, "product created successfully", map[string]any{"data": p})
}

func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	f := catalog.ProductFilter{
		Title:      r.URL.Query().Get("title"),
		CategoryID: r.URL.Query().Get("category"),
		Params:     pageParams(r).Normalize(),
	}
	list, total, err := h.Repo.ListProducts(r.Context(), f)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, "successfully retrieved products", map[string]any{
		"pagination": pagination.NewResult(total, f.Params),
		"products":   list,
	})
}

func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.Repo.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, "successfully retrieved product", map[string]any{"data": p})
}

func (h *CatalogHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       *string      `json:"title"`
		Description *string      `json:"description"`
		CategoryID  *string      `json:"category_id"`
		Variants    []variantReq `json:"variants"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	upd := catalog.ProductUpdate{Title: req.Title, Description: req.Description, CategoryID: req.CategoryID}
	for _, v := range req.Variants {
		if err := v.validate(); err != nil {
			respondErr(w, err)
			return
		}
		upd.Variants = append(upd.Variants, catalog.Variant{
			Name: v.Name, Description: v.Description, SKU: v.SKU,
			PriceCents: v.PriceCents, Stock: v.Stock, Image: v.Image,
		})
	}

	p, err := h.Repo.UpdateProduct(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, "product updated successfully", map[string]any{"data": p})
}

func (h *CatalogHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, "product deleted successfully", nil)
}

// ---- variants ----

func (h *CatalogHandler) listVariants(w http.ResponseWriter, r *http.Request) {
	f := catalog.VariantFilter{
		SKU:       r.URL.Query().Get("sku"),
		ProductID: r.URL.Query().Get("product"),
		Params:    pageParams(r).Normalize(),
	}
	list, total, err := h.Repo.ListVariants(r.Context(), f)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, "successfully retrieved variants", map[string]any{
		"pagination": pagination.NewResult(total, f.Params),
		"variants":   list,
	})
}

// ---- categories ----

func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	f := catalog.CategoryFilter{
		Name:   r.URL.Query().Get("name"),
		Params: pageParams(r).Normalize(),
	}
	list, total, err := h.Repo.ListCategories(r.Context(), f)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, "successfully retrieved categories", map[string]any{
		"pagination": pagination.NewResult(total, f.Params),
		"categories": list,
	})
}

// createCategory menerima JSON atau multipart (field "name" + file "image").
func (h *CatalogHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	name, image, err := h.categoryForm(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	if name == "" {
		respondErr(w, apperr.Invalidf("name is required"))
		return
	}

	c := catalog.Category{Name: name, Image: image}
	if err := h.Repo.CreateCategory(r.Context(), &c); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, "category created successfully", map[string]any{"data": c})
}

func (h *CatalogHandler) updateCategory(w http.ResponseWriter, r *http.Request) {
	name, image, err := h.categoryForm(r)
	if err != nil {
		respondErr(w, err)
		return
	}

	var namePtr, imagePtr *string
	if name != "" {
		namePtr = &name
	}
	if image != "" {
		imagePtr = &image
	}
	c, err := h.Repo.UpdateCategory(r.Context(), chi.URLParam(r, "id"), namePtr, imagePtr)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, "category updated successfully", map[string]any{"data": c})
}

func (h *CatalogHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, "category deleted successfully", nil)
}

func (h *CatalogHandler) categoryForm(r *http.Request) (name, image string, err error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		image, err = saveUpload(r, "image", h.UploadDir)
		if err != nil {
			return "", "", err
		}
		return r.FormValue("name"), image, nil
	}

	var req struct {
		Name  string `json:"name"`
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", "", apperr.Invalidf("invalid json")
	}
	return req.Name, req.Image, nil
}

// ---- stock opname ----

func (h *CatalogHandler) stockOpname(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VariantID  string `json:"variant_id"`
		Adjustment int    `json:"adjustment"`
		Reason     string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.VariantID == "" || req.Reason == "" {
		respondErr(w, apperr.Invalidf("variant_id and reason are required"))
		return
	}

	v, err := h.Repo.AdjustStock(r.Context(), req.VariantID, req.Adjustment, req.Reason)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, "stock adjusted successfully", map[string]any{"data": v})
}
