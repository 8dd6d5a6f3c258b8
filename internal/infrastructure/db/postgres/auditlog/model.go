package auditlog

import (
	"time"

	"github.com/google/uuid"
)

type (
	Entry struct {
		ID        uint64
		Action    string
		UserUUID  uuid.UUID
		UserName  string
		UserEmail string

		CreatedAt time.Time
	}
	Entries []*Entry
)
