package ports

import (
	"context"

	"github.com/google/uuid"
)

type SummaryService interface {
	Summarize(ctx context.Context, id uuid.UUID) (string, error)
}
