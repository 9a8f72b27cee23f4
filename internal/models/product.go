package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID                 uuid.UUID  `json:"id"`
	OwnerID            *uuid.UUID `json:"productOwner,omitempty"`
	Title              string     `json:"title" example:"iPhone 13"`
	Description        string     `json:"description"`
	Price              float64    `json:"price" example:"549"`
	Stock              int        `json:"stock" example:"94"`
	Rating             float64    `json:"rating" example:"4.69"`
	DiscountPercentage float64    `json:"discountPercentage" example:"12.96"`
	Brand              string     `json:"brand,omitempty"`
	Category           string     `json:"category,omitempty"`
	Thumbnail          string     `json:"thumbnail"`
	Images             []string   `json:"images,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// ProductPatch holds the mutable product fields; nil means unchanged.
type ProductPatch struct {
	Title              *string   `json:"title,omitempty"`
	Description        *string   `json:"description,omitempty" validate:"omitempty,min=1"`
	Price              *float64  `json:"price,omitempty" validate:"omitempty,gt=0"`
	Stock              *int      `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Rating             *float64  `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	DiscountPercentage *float64  `json:"discountPercentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	Brand              *string   `json:"brand,omitempty"`
	Category           *string   `json:"category,omitempty"`
	Thumbnail          *string   `json:"thumbnail,omitempty" validate:"omitempty,min=1"`
	Images             *[]string `json:"images,omitempty"`
}

// Apply copies the set fields of p onto product.
func (p ProductPatch) Apply(product *Product) {
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
	if p.Rating != nil {
		product.Rating = *p.Rating
	}
	if p.DiscountPercentage != nil {
		product.DiscountPercentage = *p.DiscountPercentage
	}
	if p.Brand != nil {
		product.Brand = *p.Brand
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Thumbnail != nil {
		product.Thumbnail = *p.Thumbnail
	}
	if p.Images != nil {
		product.Images = *p.Images
	}
}
