package services

import (
	"time"

	"task-tracker/web/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type ActivityService interface {
	RecordLogin(db *gorm.DB, userID uuid.UUID, ip, userAgent string) (*models.LoginActivity, error)
}

type ActivityServiceImpl struct{}

func NewActivityService() *ActivityServiceImpl {
	return &ActivityServiceImpl{}
}

// RecordLogin appends one audit row for a successful login. Rows are never
// updated or deleted afterwards.
func (s *ActivityServiceImpl) RecordLogin(db *gorm.DB, userID uuid.UUID, ip, userAgent string) (*models.LoginActivity, error) {
	activity := models.LoginActivity{
		ID:        uuid.Must(uuid.NewV4()),
		UserID:    &userID,
		IPAddress: ip,
		UserAgent: userAgent,
		LoggedAt:  time.Now(),
	}

	if err := db.Create(&activity).Error; err != nil {
		return nil, err
	}

	return &activity, nil
}
