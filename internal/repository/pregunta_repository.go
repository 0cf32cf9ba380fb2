package repository

import (
	"context"
	"escolavision_backend/internal/model"
	"escolavision_backend/internal/util"

	"gorm.io/gorm"
)

type PreguntaRepository struct {
	CRUDRepository[model.Pregunta]
}

func NewPreguntaRepository(db *gorm.DB) *PreguntaRepository {
	return &PreguntaRepository{CRUDRepository[model.Pregunta]{DB: db}}
}

// FindLatest 最近插入的问题（桌面端新建问题后用它拿到 ID）
func (r *PreguntaRepository) FindLatest(ctx context.Context) ([]model.Pregunta, error) {
	var preguntas []model.Pregunta
	err := r.DB.WithContext(ctx).Order("id DESC").Limit(1).Find(&preguntas).Error
	return preguntas, translateError(err, util.ErrMissingParent)
}

func (r *PreguntaRepository) FindByTest(ctx context.Context, idTest uint) ([]model.Pregunta, error) {
	var preguntas []model.Pregunta
	err := r.DB.WithContext(ctx).Where("idtest = ?", idTest).Order("id").Find(&preguntas).Error
	return preguntas, translateError(err, util.ErrMissingParent)
}
