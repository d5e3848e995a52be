package outbox

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Aniket-7751/POS-sub001/pkg/db/models"
)

// Repository persists outbox rows inside a caller-provided transaction.
type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Insert(tx *gorm.DB, row models.OutboxEvent) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	return tx.Create(&row).Error
}
