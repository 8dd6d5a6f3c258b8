package auditlog

import (
	"context"

	"excel-analytics-api/internal/domain/user"
)

type Repository interface {
	Append(ctx context.Context, userID user.ID, action string) error
	FetchEntries(ctx context.Context) (Entries, error)
}
