package repository

import (
	"context"
	"escolavision_backend/internal/model"
	"escolavision_backend/internal/util"

	"gorm.io/gorm"
)

type TestRepository struct {
	CRUDRepository[model.Test]
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{CRUDRepository[model.Test]{DB: db}}
}

func (r *TestRepository) CountVisible(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Test{}).Where("isVisible = ?", 1).Count(&count).Error
	return count, translateError(err, util.ErrMissingParent)
}
