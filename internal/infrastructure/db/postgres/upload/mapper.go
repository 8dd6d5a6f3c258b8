package upload

import (
	domain "excel-analytics-api/internal/domain/upload"
)

func fromDBModel(model *Upload) *domain.Upload {
	var up = &domain.Upload{
		UUID:      model.UUID,
		OwnerUUID: model.OwnerUUID,

		FileName:    model.FileName,
		DownloadURL: model.DownloadURL,
		StorageKey:  model.StorageKey,
		Columns:     model.Columns,

		CreatedAt: model.CreatedAt,
	}

	return up
}

func fromDBModels(models *Uploads) domain.Uploads {
	ups := make(domain.Uploads, len(*models))
	for idx, up := range *models {
		ups[idx] = fromDBModel(up)
	}

	return ups
}

func fromDBModelWithOwner(model *WithOwner) *domain.WithOwner {
	return &domain.WithOwner{
		Upload:     *fromDBModel(&model.Upload),
		OwnerName:  model.OwnerName,
		OwnerEmail: model.OwnerEmail,
	}
}
