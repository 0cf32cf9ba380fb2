package service

import (
	"context"
	"escolavision_backend/internal/model"
)

// 服务层依赖的仓库接口；实现位于 repository（MySQL）与 repository/inmem（测试）

type crudRepository[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, row *T) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type UsuarioRepository interface {
	crudRepository[model.Usuario]
	FindByDNI(ctx context.Context, dni string) ([]model.Usuario, error)
	FindByCentro(ctx context.Context, idCentro uint) ([]model.Usuario, error)
	FindOneByEmail(ctx context.Context, email string) (*model.Usuario, error)
	FindOneByDNI(ctx context.Context, dni string) (*model.Usuario, error)
}

type CentroRepository interface {
	crudRepository[model.Centro]
	FindByLocalidad(ctx context.Context, localidad string) ([]model.CentroResumen, error)
	CreateBatch(ctx context.Context, centros []model.Centro) error
}

type TestRepository interface {
	crudRepository[model.Test]
	CountVisible(ctx context.Context) (int64, error)
}

type PreguntaRepository interface {
	crudRepository[model.Pregunta]
	FindLatest(ctx context.Context) ([]model.Pregunta, error)
	FindByTest(ctx context.Context, idTest uint) ([]model.Pregunta, error)
}

type AreaRepository interface {
	crudRepository[model.Area]
}

type PxARepository interface {
	crudRepository[model.PxA]
	FindByPregunta(ctx context.Context, idPregunta uint) ([]model.PxA, error)
	FindByPreguntas(ctx context.Context, ids []uint) ([]model.PxA, error)
}

type IntentoRepository interface {
	crudRepository[model.Intento]
	FindByCentro(ctx context.Context, idCentro uint) ([]model.Intento, error)
}

// Repositories 七张表的仓库集合
type Repositories struct {
	Usuarios  UsuarioRepository
	Centros   CentroRepository
	Tests     TestRepository
	Preguntas PreguntaRepository
	Areas     AreaRepository
	PxA       PxARepository
	Intentos  IntentoRepository
}
