package upload

import (
	"excel-analytics-api/internal/domain/upload"
)

func ToResponseUpload(upDomain upload.Upload) Upload {
	var up = Upload{
		UUID:        upDomain.UUID,
		FileName:    upDomain.FileName,
		DownloadURL: upDomain.DownloadURL,
		Columns:     upDomain.Columns,
		CreatedAt:   upDomain.CreatedAt,
	}

	return up
}

func ToResponseUploads(upsDomain upload.Uploads) Uploads {
	ups := make(Uploads, len(upsDomain))
	for idx, up := range upsDomain {
		ups[idx] = ToResponseUpload(*up)
	}

	return ups
}

func ToResponseWithOwner(upDomain upload.WithOwner) WithOwner {
	return WithOwner{
		Upload:     ToResponseUpload(upDomain.Upload),
		OwnerName:  upDomain.OwnerName,
		OwnerEmail: upDomain.OwnerEmail,
	}
}

func ToResponseWithOwners(upsDomain upload.WithOwners) WithOwners {
	ups := make(WithOwners, len(upsDomain))
	for idx, up := range upsDomain {
		ups[idx] = ToResponseWithOwner(*up)
	}

	return ups
}
