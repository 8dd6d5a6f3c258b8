package ports

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"excel-analytics-api/internal/charts"
	"excel-analytics-api/internal/domain/upload"
	"excel-analytics-api/internal/domain/user"
	"excel-analytics-api/internal/spreadsheet"
)

// Preview is the fully materialized first sheet of a stored spreadsheet.
type Preview struct {
	Columns []string
	Rows    []spreadsheet.Row
}

type UploadService interface {
	Ingest(ctx context.Context, owner *user.User, in *multipart.FileHeader) (*upload.Upload, error)
	FindHistory(ctx context.Context, owner *user.User) (upload.Uploads, error)
	FindUpload(ctx context.Context, id uuid.UUID, requester *user.User) (*upload.Upload, error)
	Preview(ctx context.Context, id uuid.UUID, requester *user.User) (*Preview, error)
	ChartSeries(ctx context.Context, id uuid.UUID, requester *user.User, kind charts.Kind, sel charts.Selection) (*charts.Series, error)
	Delete(ctx context.Context, id uuid.UUID, requester *user.User) error
}
