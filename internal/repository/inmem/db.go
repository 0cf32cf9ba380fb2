package inmem

import (
	"context"
	"escolavision_backend/internal/model"
	"escolavision_backend/internal/util"
	"fmt"
)

type (
	DB struct {
		Usuarios  *UsuarioRepository
		Centros   *CentroRepository
		Tests     *TestRepository
		Preguntas *PreguntaRepository
		Areas     *AreaRepository
		PxA       *PxARepository
		Intentos  *IntentoRepository
	}

	UsuarioRepository struct {
		*Table[model.Usuario, *model.Usuario]
	}
	CentroRepository struct {
		*Table[model.Centro, *model.Centro]
		// FailBatch 大于 0 时，第 FailBatch 次 CreateBatch 调用失败，用于测试回滚
		FailBatch int
		batches   int
	}
	TestRepository struct {
		*Table[model.Test, *model.Test]
	}
	PreguntaRepository struct {
		*Table[model.Pregunta, *model.Pregunta]
	}
	AreaRepository struct {
		*Table[model.Area, *model.Area]
	}
	PxARepository struct {
		*Table[model.PxA, *model.PxA]
	}
	IntentoRepository struct {
		*Table[model.Intento, *model.Intento]
		usuarios *UsuarioRepository
	}
)

func Open() *DB {
	db := &DB{
		Usuarios:  &UsuarioRepository{newTable[model.Usuario, *model.Usuario]()},
		Centros:   &CentroRepository{Table: newTable[model.Centro, *model.Centro]()},
		Tests:     &TestRepository{newTable[model.Test, *model.Test]()},
		Preguntas: &PreguntaRepository{newTable[model.Pregunta, *model.Pregunta]()},
		Areas:     &AreaRepository{newTable[model.Area, *model.Area]()},
		PxA:       &PxARepository{newTable[model.PxA, *model.PxA]()},
	}
	db.Intentos = &IntentoRepository{Table: newTable[model.Intento, *model.Intento](), usuarios: db.Usuarios}
	db.constrain()
	return db
}

func inUse(table string, id uint) error {
	return fmt.Errorf("%w: %s %d", util.ErrInUse, table, id)
}

func missingParent(table string, id uint) error {
	return fmt.Errorf("%w: %s %d", util.ErrMissingParent, table, id)
}

// constrain 复刻数据库中的外键（RESTRICT）和 DNI 唯一索引（空 DNI 在库中为 NULL，不参与比较）
func (db *DB) constrain() {
	db.Usuarios.beforeWrite = func(u *model.Usuario) error {
		if u.IDCentro != nil && !db.Centros.exists(*u.IDCentro) {
			return missingParent("centros", *u.IDCentro)
		}
		if u.DNI != "" && db.Usuarios.any(func(o *model.Usuario) bool { return o.DNI == u.DNI && o.ID != u.ID }) {
			return fmt.Errorf("%w: dni %s", util.ErrDuplicate, u.DNI)
		}
		return nil
	}
	db.Centros.beforeDelete = func(id uint) error {
		if db.Usuarios.any(func(u *model.Usuario) bool { return u.IDCentro != nil && *u.IDCentro == id }) {
			return inUse("centros", id)
		}
		return nil
	}
	db.Tests.beforeDelete = func(id uint) error {
		if db.Preguntas.any(func(p *model.Pregunta) bool { return p.IDTest == id }) {
			return inUse("test", id)
		}
		return nil
	}
	db.Preguntas.beforeWrite = func(p *model.Pregunta) error {
		if !db.Tests.exists(p.IDTest) {
			return missingParent("test", p.IDTest)
		}
		return nil
	}
	db.Preguntas.beforeDelete = func(id uint) error {
		if db.PxA.any(func(x *model.PxA) bool { return x.IDPregunta == id }) {
			return inUse("pregunta", id)
		}
		return nil
	}
	db.Areas.beforeDelete = func(id uint) error {
		if db.PxA.any(func(x *model.PxA) bool { return x.IDArea == id }) {
			return inUse("area", id)
		}
		return nil
	}
	db.PxA.beforeWrite = func(x *model.PxA) error {
		if !db.Preguntas.exists(x.IDPregunta) {
			return missingParent("pregunta", x.IDPregunta)
		}
		if !db.Areas.exists(x.IDArea) {
			return missingParent("area", x.IDArea)
		}
		return nil
	}
}

func (r *UsuarioRepository) FindByDNI(ctx context.Context, dni string) ([]model.Usuario, error) {
	return r.query(func(u *model.Usuario) bool { return u.DNI == dni }), nil
}

func (r *UsuarioRepository) FindByCentro(ctx context.Context, idCentro uint) ([]model.Usuario, error) {
	return r.query(func(u *model.Usuario) bool { return u.IDCentro != nil && *u.IDCentro == idCentro }), nil
}

func (r *UsuarioRepository) FindOneByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	return first(r.query(func(u *model.Usuario) bool { return u.Email == email }))
}

func (r *UsuarioRepository) FindOneByDNI(ctx context.Context, dni string) (*model.Usuario, error) {
	return first(r.query(func(u *model.Usuario) bool { return u.DNI == dni }))
}

func (r *CentroRepository) FindByLocalidad(ctx context.Context, localidad string) ([]model.CentroResumen, error) {
	centros := r.query(func(c *model.Centro) bool { return c.Localidad == localidad })
	out := make([]model.CentroResumen, 0, len(centros))
	for _, c := range centros {
		out = append(out, model.CentroResumen{ID: c.ID, DenominacionEspecifica: c.DenominacionEspecifica})
	}
	return out, nil
}

func (r *CentroRepository) CreateBatch(ctx context.Context, centros []model.Centro) error {
	r.batches++
	if r.FailBatch > 0 && r.batches == r.FailBatch {
		return fmt.Errorf("batch %d rejected", r.batches)
	}
	for i := range centros {
		if err := r.Create(ctx, &centros[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *TestRepository) CountVisible(ctx context.Context) (int64, error) {
	return int64(len(r.query(func(t *model.Test) bool { return t.IsVisible == 1 }))), nil
}

func (r *PreguntaRepository) FindLatest(ctx context.Context) ([]model.Pregunta, error) {
	all := r.query(nil)
	if len(all) == 0 {
		return all, nil
	}
	return all[len(all)-1:], nil
}

func (r *PreguntaRepository) FindByTest(ctx context.Context, idTest uint) ([]model.Pregunta, error) {
	return r.query(func(p *model.Pregunta) bool { return p.IDTest == idTest }), nil
}

func (r *PxARepository) FindByPregunta(ctx context.Context, idPregunta uint) ([]model.PxA, error) {
	return r.query(func(x *model.PxA) bool { return x.IDPregunta == idPregunta }), nil
}

func (r *PxARepository) FindByPreguntas(ctx context.Context, ids []uint) ([]model.PxA, error) {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return r.query(func(x *model.PxA) bool { return set[x.IDPregunta] }), nil
}

// FindByCentro 等价于 SQL 实现中对 usuarios 的 INNER JOIN
func (r *IntentoRepository) FindByCentro(ctx context.Context, idCentro uint) ([]model.Intento, error) {
	alumnos, _ := r.usuarios.FindByCentro(ctx, idCentro)
	ids := make(map[uint]bool, len(alumnos))
	for _, u := range alumnos {
		ids[u.ID] = true
	}
	return r.query(func(i *model.Intento) bool { return ids[i.IDUsuario] }), nil
}

func first[T any](rows []T) (*T, error) {
	if len(rows) == 0 {
		return nil, util.ErrNotFound
	}
	return &rows[0], nil
}
