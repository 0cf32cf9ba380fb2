package service

import (
	"context"
	"errors"
	"escolavision_backend/internal/util"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
)

// 旧客户端使用的表名
const (
	TablaUsuarios  = "usuarios"
	TablaAreas     = "areas"
	TablaPreguntas = "preguntas"
	TablaIntentos  = "intentos"
	TablaPxA       = "pxa"
	TablaTests     = "tests"
	TablaCentros   = "centros"
)

// Query leer.php 的查询参数，只保留每个键的第一个值。键存在即视为已设置
type Query map[string]string

func (q Query) Get(key string) (string, bool) {
	v, ok := q[key]
	return v, ok
}

// Table 每张表的读写操作
type Table interface {
	Name() string
	Read(ctx context.Context, q Query) (interface{}, error)
	Insert(ctx context.Context, datos map[string]interface{}) (uint, error)
	Update(ctx context.Context, id uint, datos map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type TableService struct {
	tables map[string]Table
}

// maxImageChars 返回当前的图片长度上限，配置热更新后立即生效
func NewTableService(repos Repositories, maxImageChars func() int) *TableService {
	s := &TableService{tables: make(map[string]Table)}
	for _, t := range []Table{
		newUsuarioTable(repos.Usuarios, maxImageChars),
		newAreaTable(repos.Areas, maxImageChars),
		newPreguntaTable(repos.Preguntas),
		newIntentoTable(repos.Intentos),
		newPxATable(repos.PxA),
		newTestTable(repos.Tests),
		newCentroTable(repos.Centros),
	} {
		s.tables[t.Name()] = t
	}
	return s
}

// Table 按名称查找表，名称为空或未知时返回 ErrUnknownTable
func (s *TableService) Table(name string) (Table, error) {
	t, ok := s.tables[strings.TrimSpace(name)]
	if !ok {
		return nil, util.ErrUnknownTable
	}
	return t, nil
}

func (s *TableService) Names() []string {
	return []string{TablaUsuarios, TablaAreas, TablaPreguntas, TablaIntentos, TablaPxA, TablaTests, TablaCentros}
}

// crudTable 各表共用的部分
type crudTable[T any] struct {
	name string
	repo crudRepository[T]
}

func (t *crudTable[T]) Name() string {
	return t.name
}

// readID 按 id 读取：不存在或 id 非数字时返回空列表
func (t *crudTable[T]) readID(ctx context.Context, raw string) ([]T, error) {
	id, ok := util.ParseID(raw)
	if !ok {
		return []T{}, nil
	}
	row, err := t.repo.FindByID(ctx, id)
	if errors.Is(err, util.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	return []T{*row}, nil
}

func (t *crudTable[T]) readAll(ctx context.Context) ([]T, error) {
	rows, err := t.repo.FindAll(ctx)
	return orEmpty(rows), err
}

func (t *crudTable[T]) create(ctx context.Context, row *T) (uint, error) {
	if err := t.repo.Create(ctx, row); err != nil {
		return 0, err
	}
	if r, ok := any(row).(interface{ GetID() uint }); ok {
		return r.GetID(), nil
	}
	return 0, nil
}

func (t *crudTable[T]) Delete(ctx context.Context, id uint) error {
	return t.repo.Delete(ctx, id)
}

func orEmpty[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

// decodeDatos 将客户端传来的 datos 弱类型解码到输入结构体（数字可能以字符串形式出现），未知键被忽略
func decodeDatos(datos map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       idHook,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(datos); err != nil {
		return fmt.Errorf("%w: %v", util.ErrInvalidInput, err)
	}
	return nil
}

// idHook 无符号整数字段按 util.ParseID 的规则解析，负数和小数直接报错而不是被截断
func idHook(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	switch to.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	if s, ok := data.(string); data == nil || (ok && s == "") {
		return data, nil
	}
	id, ok := util.ParseID(data)
	if !ok {
		return nil, fmt.Errorf("%v no es un identificador válido", data)
	}
	return id, nil
}

// text 去掉 HTML 标签；nil 视为空字符串
func text(s *string) string {
	if s == nil {
		return ""
	}
	return util.StripTags(*s)
}

// setText 部分更新：字段给出时写入去掉标签后的值
func setText(fields map[string]interface{}, column string, s *string) {
	if s != nil {
		fields[column] = util.StripTags(*s)
	}
}

// requireID 外键列必须给出且为正整数
func requireID(column string, v *uint) (uint, error) {
	if v == nil || *v == 0 {
		return 0, fmt.Errorf("%w: falta %s", util.ErrInvalidInput, column)
	}
	return *v, nil
}

// flag 将 0/1 标志列规范化：无法识别时返回 fallback
func flag(v interface{}, fallback int) int {
	if v == nil {
		return fallback
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return fallback
	}
	if b {
		return 1
	}
	return 0
}
