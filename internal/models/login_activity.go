package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// LoginActivity is an append-only record of a successful login.
// UserID is nullable so a future change can record unattributed attempts.
type LoginActivity struct {
	ID        uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	UserID    *uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	IPAddress string     `json:"ip_address"`
	UserAgent string     `json:"user_agent"`
	LoggedAt  time.Time  `json:"logged_at" gorm:"index"`
}
