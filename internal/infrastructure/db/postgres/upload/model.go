package upload

import (
	"time"

	"github.com/google/uuid"

	userDB "excel-analytics-api/internal/infrastructure/db/postgres/user"
)

type (
	Upload struct {
		ID        uint64
		UUID      uuid.UUID
		UserID    *userDB.ID
		OwnerUUID uuid.UUID

		FileName    string
		DownloadURL string
		StorageKey  string
		Columns     []string

		CreatedAt time.Time
	}
	Uploads []*Upload

	WithOwner struct {
		Upload
		OwnerName  string
		OwnerEmail string
	}
	WithOwners []*WithOwner
)
