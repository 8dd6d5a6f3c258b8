package ports

import (
	"context"

	"excel-analytics-api/internal/domain/user"
)

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	IsAdmin     bool
	AdminSecret string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*user.User, string, error)
	Login(ctx context.Context, email, password string) (*user.User, string, error)
	Authenticate(ctx context.Context, token string) (*user.User, error)
}
