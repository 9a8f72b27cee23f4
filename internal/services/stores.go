package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopwise/backend/internal/models"
)

// UserStore is the credential store. Implemented by database.UserRepository.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByResetToken(ctx context.Context, hash string) (*models.User, error)
	GetByOTPSession(ctx context.Context, sessionID string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductStore is implemented by database.ProductRepository.
type ProductStore interface {
	List(ctx context.Context, sort []string) ([]models.Product, error)
	SearchByTitle(ctx context.Context, name string) ([]models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, owner uuid.UUID, p *models.Product) error
	Delete(ctx context.Context, owner, id uuid.UUID) error
}
