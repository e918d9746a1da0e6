package ports

import (
	"context"

	"github.com/smallerp/erp-gateway/internal/core/domain"
)

// RegisterInput carries the fields needed to create a new account.
type RegisterInput struct {
	Username    string
	Password    string
	DisplayName string
	Email       string
	Phone       string
	Role        string
}

type AuthService interface {
	// Login verifies the password and, on success, returns a freshly issued
	// session token together with the user record.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)

	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
}
