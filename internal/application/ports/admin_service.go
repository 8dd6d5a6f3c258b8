package ports

import (
	"context"

	"github.com/google/uuid"

	"excel-analytics-api/internal/domain/auditlog"
	"excel-analytics-api/internal/domain/upload"
	"excel-analytics-api/internal/domain/user"
)

type Stats struct {
	TotalUsers  uint64
	TotalAdmins uint64
	TotalFiles  uint64
}

type UserUploadCount struct {
	User  *user.User
	Count uint64
}

type AdminService interface {
	Stats(ctx context.Context) (*Stats, error)
	Users(ctx context.Context) (user.Users, error)
	DeleteUser(ctx context.Context, userUUID user.UUID) error
	UserUploadCounts(ctx context.Context) ([]UserUploadCount, error)
	Files(ctx context.Context) (upload.WithOwners, error)
	DeleteFile(ctx context.Context, id uuid.UUID, actor *user.User) error
	Logs(ctx context.Context) (auditlog.Entries, error)
}
