package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopwise/backend/internal/models"
)

// CreateProductRequest represents the product creation payload
// @Description Product creation structure
type CreateProductRequest struct {
	Title              string   `json:"title" validate:"required,min=1,max=200" example:"iPhone 9"`
	Description        string   `json:"description" validate:"required" example:"An apple mobile which is nothing like apple"`
	Price              float64  `json:"price" validate:"required,gt=0" example:"549"`
	Stock              int      `json:"stock" validate:"gte=0" example:"94"`
	Rating             float64  `json:"rating,omitempty" validate:"gte=0,lte=5" example:"4.69"`
	DiscountPercentage float64  `json:"discountPercentage,omitempty" validate:"gte=0,lte=100" example:"12.96"`
	Brand              string   `json:"brand,omitempty" example:"Apple"`
	Category           string   `json:"category,omitempty" example:"smartphones"`
	Thumbnail          string   `json:"thumbnail" validate:"required" example:"/static/images/1/thumbnail.jpg"`
	Images             []string `json:"images,omitempty"`
}

type ProductService struct {
	products  ProductStore
	validator *ValidationHelper
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products, validator: NewValidationHelper()}
}

// List returns every product. sort is a comma separated list of
// price, rating and discountPercentage, each optionally prefixed with "-".
func (s *ProductService) List(ctx context.Context, sort string) ([]models.Product, error) {
	var keys []string
	if sort != "" {
		keys = strings.Split(sort, ",")
	}
	return s.products.List(ctx, keys)
}

// Search finds products whose title contains name, ignoring case.
func (s *ProductService) Search(ctx context.Context, name string) ([]models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: search term is empty", models.ErrValidation)
	}

	products, err := s.products.SearchByTitle(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: no product matches %q", models.ErrNotFound, name)
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, owner *models.User, req CreateProductRequest) (*models.Product, error) {
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	ownerID := owner.ID
	product := &models.Product{
		OwnerID:            &ownerID,
		Title:              strings.TrimSpace(req.Title),
		Description:        req.Description,
		Price:              req.Price,
		Stock:              req.Stock,
		Rating:             req.Rating,
		DiscountPercentage: req.DiscountPercentage,
		Brand:              req.Brand,
		Category:           req.Category,
		Thumbnail:          req.Thumbnail,
		Images:             req.Images,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	log.Printf("[PRODUCT] Product %s created by user %s", product.ID, owner.ID)
	return product, nil
}

// Update applies patch to a product owned by owner. Titles are immutable.
func (s *ProductService) Update(ctx context.Context, owner *models.User, id uuid.UUID, patch models.ProductPatch) (*models.Product, error) {
	if patch.Title != nil {
		return nil, fmt.Errorf("%w: product title cannot be changed, please create a new product", models.ErrValidation)
	}
	if err := s.validator.Validate(&patch); err != nil {
		return nil, err
	}

	product, err := s.owned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(product)
	if err := s.products.Update(ctx, owner.ID, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, owner *models.User, id uuid.UUID) error {
	if err := s.products.Delete(ctx, owner.ID, id); err != nil {
		return err
	}
	log.Printf("[PRODUCT] Product %s deleted by user %s", id, owner.ID)
	return nil
}

// owned loads a product and hides products of other users behind ErrNotFound.
func (s *ProductService) owned(ctx context.Context, owner *models.User, id uuid.UUID) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.OwnerID == nil || *product.OwnerID != owner.ID {
		return nil, models.ErrNotFound
	}
	return product, nil
}
