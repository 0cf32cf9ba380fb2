package repository

import (
	"context"
	"escolavision_backend/internal/model"
	"escolavision_backend/internal/util"

	"gorm.io/gorm"
)

type CentroRepository struct {
	CRUDRepository[model.Centro]
}

func NewCentroRepository(db *gorm.DB) *CentroRepository {
	return &CentroRepository{CRUDRepository[model.Centro]{DB: db}}
}

func (r *CentroRepository) FindByLocalidad(ctx context.Context, localidad string) ([]model.CentroResumen, error) {
	var centros []model.CentroResumen
	err := r.DB.WithContext(ctx).
		Model(&model.Centro{}).
		Select("id, denominacion_especifica").
		Where("localidad = ?", localidad).
		Scan(&centros).Error
	return centros, translateError(err, util.ErrMissingParent)
}

// CreateBatch 在单个事务中插入一批学校，失败时整批回滚
func (r *CentroRepository) CreateBatch(ctx context.Context, centros []model.Centro) error {
	if len(centros) == 0 {
		return nil
	}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&centros).Error
	})
	return translateError(err, util.ErrMissingParent)
}
