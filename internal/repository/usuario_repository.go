package repository

import (
	"context"
	"escolavision_backend/internal/model"
	"escolavision_backend/internal/util"

	"gorm.io/gorm"
)

type UsuarioRepository struct {
	CRUDRepository[model.Usuario]
}

func NewUsuarioRepository(db *gorm.DB) *UsuarioRepository {
	return &UsuarioRepository{CRUDRepository[model.Usuario]{DB: db}}
}

func (r *UsuarioRepository) FindByDNI(ctx context.Context, dni string) ([]model.Usuario, error) {
	var users []model.Usuario
	err := r.DB.WithContext(ctx).Where("dni = ?", dni).Find(&users).Error
	return users, translateError(err, util.ErrMissingParent)
}

func (r *UsuarioRepository) FindByCentro(ctx context.Context, idCentro uint) ([]model.Usuario, error) {
	var users []model.Usuario
	err := r.DB.WithContext(ctx).Where("id_centro = ?", idCentro).Find(&users).Error
	return users, translateError(err, util.ErrMissingParent)
}

// FindOneByEmail 登录时按邮箱查找
func (r *UsuarioRepository) FindOneByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var user model.Usuario
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err, util.ErrMissingParent)
	}
	return &user, nil
}

// FindOneByDNI 登录时按 DNI 查找
func (r *UsuarioRepository) FindOneByDNI(ctx context.Context, dni string) (*model.Usuario, error) {
	var user model.Usuario
	if err := r.DB.WithContext(ctx).Where("dni = ?", dni).First(&user).Error; err != nil {
		return nil, translateError(err, util.ErrMissingParent)
	}
	return &user, nil
}
