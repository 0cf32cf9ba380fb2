package repository

import (
	"escolavision_backend/internal/model"

	"gorm.io/gorm"
)

type AreaRepository struct {
	CRUDRepository[model.Area]
}

func NewAreaRepository(db *gorm.DB) *AreaRepository {
	return &AreaRepository{CRUDRepository[model.Area]{DB: db}}
}
