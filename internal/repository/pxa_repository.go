package repository

import (
	"context"
	"escolavision_backend/internal/model"
	"escolavision_backend/internal/util"

	"gorm.io/gorm"
)

type PxARepository struct {
	CRUDRepository[model.PxA]
}

func NewPxARepository(db *gorm.DB) *PxARepository {
	return &PxARepository{CRUDRepository[model.PxA]{DB: db}}
}

func (r *PxARepository) FindByPregunta(ctx context.Context, idPregunta uint) ([]model.PxA, error) {
	var rows []model.PxA
	err := r.DB.WithContext(ctx).Where("idpregunta = ?", idPregunta).Find(&rows).Error
	return rows, translateError(err, util.ErrMissingParent)
}

// FindByPreguntas 计分时一次取出整套测试的映射
func (r *PxARepository) FindByPreguntas(ctx context.Context, ids []uint) ([]model.PxA, error) {
	var rows []model.PxA
	if len(ids) == 0 {
		return rows, nil
	}
	err := r.DB.WithContext(ctx).Where("idpregunta IN ?", ids).Find(&rows).Error
	return rows, translateError(err, util.ErrMissingParent)
}
