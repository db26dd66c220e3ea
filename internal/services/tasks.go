package services

import (
	"errors"
	"time"

	"task-tracker/web/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrNotTaskOwner = errors.New("task does not belong to user")
)

type TaskService interface {
	CreateTask(db *gorm.DB, ownerID uuid.UUID, title string) (*models.Task, error)
	GetTasksByOwner(db *gorm.DB, ownerID uuid.UUID) ([]models.Task, error)
	DeleteTask(db *gorm.DB, taskID, requestingUserID uuid.UUID) error
}

type TaskServiceImpl struct{}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{}
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, ownerID uuid.UUID, title string) (*models.Task, error) {
	task := models.Task{
		ID:        uuid.Must(uuid.NewV4()),
		OwnerID:   ownerID,
		Title:     title,
		CreatedAt: time.Now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&task).Error
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

func (s *TaskServiceImpl) GetTasksByOwner(db *gorm.DB, ownerID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	result := db.Where("owner_id = ?", ownerID).Order("created_at asc").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// DeleteTask removes a task after verifying the requester owns it. The
// ownership check happens inside the same transaction as the delete.
func (s *TaskServiceImpl) DeleteTask(db *gorm.DB, taskID, requestingUserID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Where("id = ?", taskID).First(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}

		if task.OwnerID != requestingUserID {
			return ErrNotTaskOwner
		}

		return tx.Delete(&task).Error
	})
}
