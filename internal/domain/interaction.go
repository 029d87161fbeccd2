package domain

import (
	"time"

	"github.com/google/uuid"
)

type Interaction struct {
	ID        uuid.UUID
	Session   string
	Intent    string
	QueryText string
	Reply     string
	CreatedAt time.Time
}
