package ports

import (
	"context"
	"time"

	"github.com/smallerp/erp-gateway/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateLastActive(ctx context.Context, id string, at time.Time) error
}
