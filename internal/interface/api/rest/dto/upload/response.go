package upload

import (
	"time"

	"github.com/google/uuid"

	"excel-analytics-api/internal/spreadsheet"
)

type (
	Upload struct {
		UUID        uuid.UUID `json:"uuid"`
		FileName    string    `json:"file_name"`
		DownloadURL string    `json:"download_url"`
		Columns     []string  `json:"columns"`
		CreatedAt   time.Time `json:"created_at"`
	}
	Uploads      []Upload
	ResponseData struct {
		Data Uploads `json:"data"`
	}

	WithOwner struct {
		Upload
		OwnerName  string `json:"owner_name"`
		OwnerEmail string `json:"owner_email"`
	}
	WithOwners         []WithOwner
	OwnersResponseData struct {
		Data WithOwners `json:"data"`
	}

	Preview struct {
		Columns []string          `json:"columns"`
		Rows    []spreadsheet.Row `json:"rows"`
	}

	Created struct {
		Upload  Upload   `json:"upload"`
		Columns []string `json:"columns"`
	}
)
