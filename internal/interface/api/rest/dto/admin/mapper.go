package admin

import (
	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/domain/auditlog"
)

func ToResponseStats(s ports.Stats) Stats {
	return Stats{
		TotalUsers:  s.TotalUsers,
		TotalAdmins: s.TotalAdmins,
		TotalFiles:  s.TotalFiles,
	}
}

func ToResponseUserUploadCounts(counts []ports.UserUploadCount) UserUploadCounts {
	out := make(UserUploadCounts, len(counts))
	for idx, c := range counts {
		out[idx] = UserUploadCount{
			UUID:        c.User.UUID,
			Name:        c.User.Name,
			Email:       c.User.Email,
			IsAdmin:     c.User.IsAdmin,
			UploadCount: c.Count,
		}
	}

	return out
}

func ToResponseAuditEntries(es auditlog.Entries) AuditEntries {
	out := make(AuditEntries, len(es))
	for idx, e := range es {
		out[idx] = AuditEntry{
			ID:        e.ID,
			Action:    e.Action,
			UserUUID:  e.UserUUID,
			UserName:  e.UserName,
			UserEmail: e.UserEmail,
			CreatedAt: e.CreatedAt,
		}
	}

	return out
}
