package repository

import (
	"context"
	"escolavision_backend/internal/model"
	"escolavision_backend/internal/util"

	"gorm.io/gorm"
)

type IntentoRepository struct {
	CRUDRepository[model.Intento]
}

func NewIntentoRepository(db *gorm.DB) *IntentoRepository {
	return &IntentoRepository{CRUDRepository[model.Intento]{DB: db}}
}

// FindByCentro 该学校所有用户的答题记录
func (r *IntentoRepository) FindByCentro(ctx context.Context, idCentro uint) ([]model.Intento, error) {
	var rows []model.Intento
	err := r.DB.WithContext(ctx).
		Select("intentos.*").
		Joins("INNER JOIN usuarios ON intentos.idusuario = usuarios.id").
		Where("usuarios.id_centro = ?", idCentro).
		Find(&rows).Error
	return rows, translateError(err, util.ErrMissingParent)
}
