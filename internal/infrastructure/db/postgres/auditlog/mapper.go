package auditlog

import (
	domain "excel-analytics-api/internal/domain/auditlog"
)

func fromDBModel(model *Entry) *domain.Entry {
	return &domain.Entry{
		ID:        model.ID,
		Action:    model.Action,
		UserUUID:  model.UserUUID,
		UserName:  model.UserName,
		UserEmail: model.UserEmail,

		CreatedAt: model.CreatedAt,
	}
}

func fromDBModels(models *Entries) domain.Entries {
	es := make(domain.Entries, len(*models))
	for idx, e := range *models {
		es[idx] = fromDBModel(e)
	}

	return es
}
