package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/shopwise/backend/internal/models"
)

// catalogueItem is one entry of a dummyjson-style product listing.
type catalogueItem struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand"`
	Category           string   `json:"category"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
}

func loadCatalogue(ctx context.Context, source string) ([]models.Product, error) {
	var body io.ReadCloser
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		body = resp.Body
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		body = f
	}
	defer body.Close()

	return parseCatalogue(body)
}

// parseCatalogue accepts either {"products": [...]} or a bare array.
func parseCatalogue(r io.Reader) ([]models.Product, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var items []catalogueItem
	if trimmed := strings.TrimSpace(string(raw)); strings.HasPrefix(trimmed, "[") {
		err = json.Unmarshal(raw, &items)
	} else {
		var page struct {
			Products []catalogueItem `json:"products"`
		}
		err = json.Unmarshal(raw, &page)
		items = page.Products
	}
	if err != nil {
		return nil, fmt.Errorf("invalid catalogue: %w", err)
	}

	products := make([]models.Product, 0, len(items))
	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		products = append(products, models.Product{
			Title:              title,
			Description:        item.Description,
			Price:              item.Price,
			DiscountPercentage: item.DiscountPercentage,
			Rating:             item.Rating,
			Stock:              item.Stock,
			Brand:              item.Brand,
			Category:           item.Category,
			Thumbnail:          item.Thumbnail,
			Images:             item.Images,
		})
	}
	return products, nil
}
