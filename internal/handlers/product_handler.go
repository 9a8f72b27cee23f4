package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	mW "github.com/shopwise/backend/internal/middleware"
	"github.com/shopwise/backend/internal/models"
	"github.com/shopwise/backend/internal/services"
)

// ProductAPI is implemented by services.ProductService.
type ProductAPI interface {
	List(ctx context.Context, sort string) ([]models.Product, error)
	Search(ctx context.Context, name string) ([]models.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, owner *models.User, req services.CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, owner *models.User, id uuid.UUID, patch models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, owner *models.User, id uuid.UUID) error
}

// ProductListResponse wraps a list of products
type ProductListResponse struct {
	Status  string           `json:"status" example:"success"`
	Results int              `json:"results" example:"1"`
	Data    []models.Product `json:"data"`
}

// ProductResponse wraps a single product
type ProductResponse struct {
	Status string          `json:"status" example:"success"`
	Data   *models.Product `json:"data"`
}

type ProductHandler struct {
	service ProductAPI
}

func NewProductHandler(service ProductAPI) *ProductHandler {
	return &ProductHandler{service: service}
}

// List returns all products
// @Summary List products
// @Tags Products
// @Produce json
// @Param sort query string false "Comma separated sort keys: price, rating, discountPercentage. Prefix with - for descending."
// @Success 200 {object} ProductListResponse
// @Failure 400 {object} services.ErrorResponse
// @Router /products [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProductListResponse{Status: "success", Results: len(products), Data: products})
}

// Search finds products by title
// @Summary Search products
// @Description Case-insensitive title search
// @Tags Products
// @Produce json
// @Param name path string true "Part of the title"
// @Success 200 {object} ProductListResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /products/search/{name} [get]
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Search(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProductListResponse{Status: "success", Results: len(products), Data: products})
}

// Get returns one product
// @Summary Get product
// @Tags Products
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /products/{productId} [get]
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProductResponse{Status: "success", Data: product})
}

// Create adds a product owned by the current user
// @Summary Create product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.CreateProductRequest true "Product"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := mW.UserFromContext(r.Context())

	var req services.CreateProductRequest
	if !decodeJSON(w, r, &req, "PRODUCT") {
		return
	}

	product, err := h.service.Create(r.Context(), user, req)
	if err != nil {
		log.Printf("[PRODUCT] Create failed for user %s: %v", user.ID, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ProductResponse{Status: "success", Data: product})
}

// Update changes a product owned by the current user
// @Summary Update product
// @Description Titles cannot be changed
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Param request body models.ProductPatch true "Fields to change"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /products/{productId} [patch]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, _ := mW.UserFromContext(r.Context())
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var patch models.ProductPatch
	if !decodeJSON(w, r, &patch, "PRODUCT") {
		return
	}

	product, err := h.service.Update(r.Context(), user, id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProductResponse{Status: "success", Data: product})
}

// Delete removes a product owned by the current user
// @Summary Delete product
// @Tags Products
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 204
// @Failure 401 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /products/{productId} [delete]
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, _ := mW.UserFromContext(r.Context())
	id, ok := productID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), user, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func productID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		services.SendErrorResponse(w, "invalid product id", http.StatusBadRequest, nil)
		return uuid.Nil, false
	}
	return id, true
}

// ProductRoutes builds the /products router. Reads are public; writes need
// a session, a confirmed account and a satisfied second factor.
func ProductRoutes(products *ProductHandler, authenticate func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", products.List)
	r.Get("/search/{name}", products.Search)
	r.Get("/{productId}", products.Get)

	r.Group(func(r chi.Router) {
		r.Use(authenticate, mW.RequireActive, mW.RequireSecondFactor)

		r.Post("/", products.Create)
		r.Patch("/{productId}", products.Update)
		r.Delete("/{productId}", products.Delete)
	})

	return r
}
