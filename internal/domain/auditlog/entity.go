package auditlog

import (
	"time"

	"excel-analytics-api/internal/domain/user"
)

type (
	// Entry is one append-only record of an administrative action.
	Entry struct {
		ID        uint64
		Action    string
		UserUUID  user.UUID
		UserName  string
		UserEmail string

		CreatedAt time.Time
	}
	Entries []*Entry
)
