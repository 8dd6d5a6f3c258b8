package upload

import (
	"context"

	"github.com/google/uuid"

	"excel-analytics-api/internal/domain/user"
)

type Repository interface {
	FetchUploadByID(ctx context.Context, id uuid.UUID) (*Upload, error)
	FetchUserUploads(ctx context.Context, userID user.ID) (Uploads, error)
	FetchAllUploads(ctx context.Context) (WithOwners, error)
	CreateUpload(ctx context.Context, userID user.ID, req *Upload) (*Upload, error)
	DeleteUpload(ctx context.Context, id uuid.UUID) error
	DeleteUserUploads(ctx context.Context, userID user.ID) error
	CountUploads(ctx context.Context) (uint64, error)
	CountUploadsPerUser(ctx context.Context) ([]OwnerCount, error)
}
