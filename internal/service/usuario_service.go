package service

import (
	"context"
	"escolavision_backend/internal/model"
	"escolavision_backend/internal/util"
	"fmt"

	"github.com/spf13/cast"
	"golang.org/x/crypto/bcrypt"
)

type usuarioInput struct {
	Nombre          *string     `mapstructure:"nombre"`
	Email           *string     `mapstructure:"email" validate:"omitempty,email"`
	Contrasena      *string     `mapstructure:"contraseña"`
	FechaNacimiento *string     `mapstructure:"fecha_nacimiento"`
	DNI             *string     `mapstructure:"dni"`
	Foto            *string     `mapstructure:"foto"`
	TipoUsuario     *string     `mapstructure:"tipo_usuario" validate:"omitempty,oneof=Alumno Profesor"`
	IsOrientador    interface{} `mapstructure:"is_orientador"`
	IDCentro        interface{} `mapstructure:"id_centro"`
}

// dropEmpty 空字符串视为未提供，避免表单中的空 email 或 tipo_usuario 触发校验
func (in *usuarioInput) dropEmpty() {
	for _, s := range []**string{&in.Nombre, &in.Email, &in.Contrasena, &in.FechaNacimiento, &in.DNI, &in.Foto, &in.TipoUsuario} {
		if *s != nil && **s == "" {
			*s = nil
		}
	}
}

type usuarioTable struct {
	crudTable[model.Usuario]
	usuarios      UsuarioRepository
	maxImageChars func() int
}

func newUsuarioTable(repo UsuarioRepository, maxImageChars func() int) *usuarioTable {
	return &usuarioTable{
		crudTable:     crudTable[model.Usuario]{name: TablaUsuarios, repo: repo},
		usuarios:      repo,
		maxImageChars: maxImageChars,
	}
}

func (t *usuarioTable) Read(ctx context.Context, q Query) (interface{}, error) {
	var (
		rows []model.Usuario
		err  error
	)
	if raw, ok := q.Get("id"); ok {
		rows, err = t.readID(ctx, raw)
	} else if dni, ok := q.Get("dni"); ok {
		rows, err = t.usuarios.FindByDNI(ctx, dni)
	} else if raw, ok := q.Get("id_centro"); ok {
		if id, valid := util.ParseID(raw); valid {
			rows, err = t.usuarios.FindByCentro(ctx, id)
		}
	} else {
		rows, err = t.readAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return hidePasswords(orEmpty(rows)), nil
}

// hidePasswords 保留 contraseña 键（客户端按必填字段解析），但不返回哈希
func hidePasswords(rows []model.Usuario) []model.Usuario {
	for i := range rows {
		rows[i].Contrasena = ""
	}
	return rows
}

func (t *usuarioTable) Insert(ctx context.Context, datos map[string]interface{}) (uint, error) {
	var in usuarioInput
	if err := decodeDatos(datos, &in); err != nil {
		return 0, err
	}
	in.dropEmpty()
	if err := util.ValidateStruct(in); err != nil {
		return 0, err
	}

	u := &model.Usuario{
		Nombre:          text(in.Nombre),
		Email:           text(in.Email),
		FechaNacimiento: text(in.FechaNacimiento),
		DNI:             text(in.DNI),
		TipoUsuario:     model.TipoUsuario(text(in.TipoUsuario)),
		IsOrientador:    orientadorFlag(in.IsOrientador),
	}

	if util.Validate.Var(u.Nombre, "notblank") != nil {
		return 0, fmt.Errorf("%w: falta nombre", util.ErrInvalidInput)
	}
	password := text(in.Contrasena)
	if util.Validate.Var(password, "notblank") != nil {
		return 0, fmt.Errorf("%w: falta contraseña", util.ErrInvalidInput)
	}
	hash, err := hashPassword(password)
	if err != nil {
		return 0, err
	}
	u.Contrasena = hash

	if u.Foto, err = util.NormalizeBase64Image(text(in.Foto), t.maxImageChars()); err != nil {
		return 0, err
	}
	if u.IDCentro, err = optionalID("id_centro", in.IDCentro); err != nil {
		return 0, err
	}

	return t.create(ctx, u)
}

// Update 只写入非空字符串；is_orientador 与 id_centro 只要不是 null 就写入
func (t *usuarioTable) Update(ctx context.Context, id uint, datos map[string]interface{}) error {
	var in usuarioInput
	if err := decodeDatos(datos, &in); err != nil {
		return err
	}
	in.dropEmpty()
	if err := util.ValidateStruct(in); err != nil {
		return err
	}

	fields := make(map[string]interface{})
	setText(fields, "nombre", in.Nombre)
	setText(fields, "email", in.Email)
	setText(fields, "fecha_nacimiento", in.FechaNacimiento)
	setText(fields, "dni", in.DNI)
	setText(fields, "tipo_usuario", in.TipoUsuario)

	if in.Contrasena != nil {
		hash, err := hashPassword(util.StripTags(*in.Contrasena))
		if err != nil {
			return err
		}
		fields["contraseña"] = hash
	}
	if in.Foto != nil {
		foto, err := util.NormalizeBase64Image(*in.Foto, t.maxImageChars())
		if err != nil {
			return err
		}
		fields["foto"] = foto
	}
	if in.IsOrientador != nil {
		fields["is_orientador"] = orientadorFlag(in.IsOrientador)
	}
	if in.IDCentro != nil {
		centro, err := optionalID("id_centro", in.IDCentro)
		if err != nil {
			return err
		}
		fields["id_centro"] = centro
	}

	if len(fields) == 0 {
		return util.ErrNothingToUpdate
	}
	return t.usuarios.Update(ctx, id, fields)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// orientadorFlag 只有 0 和 1 是合法值，其余一律视为 0
func orientadorFlag(v interface{}) int {
	n, err := cast.ToIntE(v)
	if err != nil || n != 1 {
		return 0
	}
	return 1
}

// optionalID 可为空的外键：null、空串和 0 表示未关联
func optionalID(column string, v interface{}) (*uint, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := v.(string); ok && s == "" {
		return nil, nil
	}
	id, ok := util.ParseID(v)
	if !ok {
		return nil, fmt.Errorf("%w: %s no válido", util.ErrInvalidInput, column)
	}
	if id == 0 {
		return nil, nil
	}
	return &id, nil
}
