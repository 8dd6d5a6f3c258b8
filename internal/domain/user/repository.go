package user

import (
	"context"
	"errors"
)

// ErrNotFound reports that no user row matches the given identifier.
var ErrNotFound = errors.New("user not found")

type Repository interface {
	FetchUserByID(ctx context.Context, uuid UUID) (*User, error)
	FetchUserByEmail(ctx context.Context, email string) (*User, error)
	FetchUsers(ctx context.Context) (Users, error)
	CreateUser(ctx context.Context, req User) (*User, error)
	FetchInternalID(ctx context.Context, uuid UUID) (ID, error)
	DeleteUser(ctx context.Context, id ID) (*User, error)
	CountUsers(ctx context.Context) (uint64, error)
	CountAdmins(ctx context.Context) (uint64, error)
}
