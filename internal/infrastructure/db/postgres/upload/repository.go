package upload

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"excel-analytics-api/internal/domain/upload"
	"excel-analytics-api/internal/domain/user"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) upload.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUploadByID(ctx context.Context, id uuid.UUID) (*upload.Upload, error) {
	up := new(Upload)
	err := r.db.QueryRow(ctx, SelectUploadByID, id.String()).Scan(
		&up.ID,
		&up.UUID,
		&up.UserID,
		&up.OwnerUUID,

		&up.FileName,
		&up.DownloadURL,
		&up.StorageKey,
		&up.Columns,

		&up.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(up), err
}

func (r *Repository) FetchUserUploads(ctx context.Context, userID user.ID) (upload.Uploads, error) {
	rows, err := r.db.Query(ctx, SelectUserUploads, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ups Uploads
	for rows.Next() {
		up := new(Upload)

		if err = rows.Scan(
			&up.ID,
			&up.UUID,
			&up.UserID,
			&up.OwnerUUID,

			&up.FileName,
			&up.DownloadURL,
			&up.StorageKey,
			&up.Columns,

			&up.CreatedAt,
		); err != nil {
			return nil, err
		}

		ups = append(ups, up)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&ups), nil
}

func (r *Repository) FetchAllUploads(ctx context.Context) (upload.WithOwners, error) {
	rows, err := r.db.Query(ctx, SelectAllUploads)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out upload.WithOwners
	for rows.Next() {
		up := new(WithOwner)

		if err = rows.Scan(
			&up.ID,
			&up.UUID,
			&up.UserID,
			&up.OwnerUUID,

			&up.FileName,
			&up.DownloadURL,
			&up.StorageKey,
			&up.Columns,

			&up.CreatedAt,

			&up.OwnerName,
			&up.OwnerEmail,
		); err != nil {
			return nil, err
		}

		out = append(out, fromDBModelWithOwner(up))
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Repository) CreateUpload(ctx context.Context, userID user.ID, req *upload.Upload) (*upload.Upload, error) {
	up := new(Upload)

	err := r.db.QueryRow(
		ctx,
		InsertUpload,
		userID, req.FileName, req.DownloadURL, req.StorageKey, req.Columns,
	).Scan(
		&up.ID,
		&up.UUID,
		&up.UserID,

		&up.FileName,
		&up.DownloadURL,
		&up.StorageKey,
		&up.Columns,

		&up.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	// the insert cannot return the joined owner uuid, the caller already has it
	up.OwnerUUID = req.OwnerUUID

	return fromDBModel(up), err
}

func (r *Repository) DeleteUpload(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, DeleteUploadByID, id.String())
	return err
}

func (r *Repository) DeleteUserUploads(ctx context.Context, userID user.ID) error {
	_, err := r.db.Exec(ctx, DeleteByUserID, userID)
	return err
}

func (r *Repository) CountUploads(ctx context.Context) (uint64, error) {
	var n uint64
	if err := r.db.QueryRow(ctx, CountAllUploads).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repository) CountUploadsPerUser(ctx context.Context) ([]upload.OwnerCount, error) {
	rows, err := r.db.Query(ctx, CountPerUser)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []upload.OwnerCount
	for rows.Next() {
		var oc upload.OwnerCount
		if err = rows.Scan(&oc.OwnerUUID, &oc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, oc)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
