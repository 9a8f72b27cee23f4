package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopwise/backend/internal/models"
)

const productColumns = `id, owner_id, title, description, price, stock, rating, discount_percentage,
	brand, category, thumbnail, images, created_at, updated_at`

// SortFields maps the public sort keys to columns.
var SortFields = map[string]string{
	"price":              "price",
	"rating":             "rating",
	"discountPercentage": "discount_percentage",
}

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.Price, &p.Stock, &p.Rating, &p.DiscountPercentage,
		&p.Brand, &p.Category, &p.Thumbnail, pq.Array(&p.Images), &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	return &p, nil
}

// OrderBy turns keys like "price" or "-rating" into an ORDER BY clause.
// Unknown keys are rejected with ErrValidation.
func OrderBy(keys []string) (string, error) {
	if len(keys) == 0 {
		return "created_at DESC", nil
	}

	clauses := make([]string, 0, len(keys))
	for _, key := range keys {
		key = strings.TrimSpace(key)
		dir := "ASC"
		if strings.HasPrefix(key, "-") {
			dir = "DESC"
			key = key[1:]
		}
		col, ok := SortFields[key]
		if !ok {
			return "", fmt.Errorf("%w: cannot sort by %q", models.ErrValidation, key)
		}
		clauses = append(clauses, col+" "+dir)
	}
	return strings.Join(clauses, ", "), nil
}

func (r *ProductRepository) query(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) List(ctx context.Context, sort []string) ([]models.Product, error) {
	order, err := OrderBy(sort)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY `+order)
}

// SearchByTitle matches title case-insensitively against a substring.
func (r *ProductRepository) SearchByTitle(ctx context.Context, name string) ([]models.Product, error) {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(name)
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE title ILIKE '%' || $1 || '%' ORDER BY title`, escaped)
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return scanProduct(r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Images == nil {
		p.Images = []string{}
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO products (id, owner_id, title, description, price, stock, rating, discount_percentage,
			brand, category, thumbnail, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING created_at, updated_at`,
		p.ID, p.OwnerID, p.Title, p.Description, p.Price, p.Stock, p.Rating, p.DiscountPercentage,
		p.Brand, p.Category, p.Thumbnail, pq.Array(p.Images),
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if isUniqueViolation(err, "products_owner_title_key") {
		return models.ErrDuplicateProduct
	}
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update writes the mutable columns of p, scoped to owner. Title is never updated.
func (r *ProductRepository) Update(ctx context.Context, owner uuid.UUID, p *models.Product) error {
	err := r.db.QueryRowContext(ctx,
		`UPDATE products SET description = $3, price = $4, stock = $5, rating = $6, discount_percentage = $7,
			brand = $8, category = $9, thumbnail = $10, images = $11, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2 RETURNING updated_at`,
		p.ID, owner, p.Description, p.Price, p.Stock, p.Rating, p.DiscountPercentage,
		p.Brand, p.Category, p.Thumbnail, pq.Array(p.Images),
	).Scan(&p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, owner, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1 AND owner_id = $2`, id, owner)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Import inserts products in one transaction, skipping titles that already exist.
func (r *ProductRepository) Import(ctx context.Context, products []models.Product) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.Images == nil {
			p.Images = []string{}
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO products (id, owner_id, title, description, price, stock, rating, discount_percentage,
				brand, category, thumbnail, images)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT ON CONSTRAINT products_owner_title_key DO NOTHING`,
			p.ID, p.OwnerID, p.Title, p.Description, p.Price, p.Stock, p.Rating, p.DiscountPercentage,
			p.Brand, p.Category, p.Thumbnail, pq.Array(p.Images),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to import product %q: %w", p.Title, err)
		}
		n, _ := res.RowsAffected()
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return inserted, nil
}

// DeleteUnowned removes imported catalogue products (those without an owner).
func (r *ProductRepository) DeleteUnowned(ctx context.Context) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE owner_id IS NULL`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete products: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
