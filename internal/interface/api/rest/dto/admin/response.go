package admin

import (
	"time"

	"github.com/google/uuid"
)

type (
	Stats struct {
		TotalUsers  uint64 `json:"total_users"`
		TotalAdmins uint64 `json:"total_admins"`
		TotalFiles  uint64 `json:"total_files"`
	}

	UserUploadCount struct {
		UUID        uuid.UUID `json:"uuid"`
		Name        string    `json:"name"`
		Email       string    `json:"email"`
		IsAdmin     bool      `json:"is_admin"`
		UploadCount uint64    `json:"upload_count"`
	}
	UserUploadCounts []UserUploadCount

	AuditEntry struct {
		ID        uint64    `json:"id"`
		Action    string    `json:"action"`
		UserUUID  uuid.UUID `json:"user_uuid"`
		UserName  string    `json:"user_name"`
		UserEmail string    `json:"user_email"`
		CreatedAt time.Time `json:"created_at"`
	}
	AuditEntries []AuditEntry
)
