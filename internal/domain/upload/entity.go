package upload

import (
	"time"

	"github.com/google/uuid"

	"excel-analytics-api/internal/domain/user"
)

type (
	// Upload is the metadata record for one stored spreadsheet. The blob
	// itself lives in object storage; StorageKey is the deletion handle and
	// is empty for legacy records whose DownloadURL points at local disk.
	Upload struct {
		UUID      uuid.UUID
		OwnerUUID user.UUID

		FileName    string
		DownloadURL string
		StorageKey  string
		Columns     []string

		CreatedAt time.Time
	}
	Uploads []*Upload

	// WithOwner enriches an upload with display fields of its owning user,
	// for the admin file listing.
	WithOwner struct {
		Upload
		OwnerName  string
		OwnerEmail string
	}
	WithOwners []*WithOwner

	// OwnerCount is one row of the per-user upload aggregation.
	OwnerCount struct {
		OwnerUUID user.UUID
		Count     uint64
	}
)
