package auditlog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"excel-analytics-api/internal/domain/auditlog"
	"excel-analytics-api/internal/domain/user"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) auditlog.Repository {
	return &Repository{db: db}
}

func (r *Repository) Append(ctx context.Context, userID user.ID, action string) error {
	_, err := r.db.Exec(ctx, InsertEntry, action, userID)
	return err
}

func (r *Repository) FetchEntries(ctx context.Context) (auditlog.Entries, error) {
	rows, err := r.db.Query(ctx, SelectEntries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var es Entries
	for rows.Next() {
		e := new(Entry)

		if err = rows.Scan(
			&e.ID,
			&e.Action,
			&e.UserUUID,
			&e.UserName,
			&e.UserEmail,

			&e.CreatedAt,
		); err != nil {
			return nil, err
		}

		es = append(es, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&es), nil
}
