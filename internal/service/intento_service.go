package service

import (
	"context"
	"escolavision_backend/internal/model"
	"escolavision_backend/internal/util"
	"time"
)

// now 测试中可替换
var now = time.Now

type intentoInput struct {
	IDTest     *uint   `mapstructure:"idtest"`
	IDUsuario  *uint   `mapstructure:"idusuario"`
	Fecha      *string `mapstructure:"fecha"`
	Hora       *string `mapstructure:"hora"`
	Resultados *string `mapstructure:"resultados"`
}

type intentoTable struct {
	crudTable[model.Intento]
	intentos IntentoRepository
}

func newIntentoTable(repo IntentoRepository) *intentoTable {
	return &intentoTable{
		crudTable: crudTable[model.Intento]{name: TablaIntentos, repo: repo},
		intentos:  repo,
	}
}

func (t *intentoTable) Read(ctx context.Context, q Query) (interface{}, error) {
	if raw, ok := q.Get("id"); ok {
		return t.readID(ctx, raw)
	}
	if raw, ok := q.Get("id_centro"); ok {
		id, valid := util.ParseID(raw)
		if !valid {
			return []model.Intento{}, nil
		}
		rows, err := t.intentos.FindByCentro(ctx, id)
		return orEmpty(rows), err
	}
	return t.readAll(ctx)
}

// Insert 未给出 fecha / hora 时使用服务器当前时间
func (t *intentoTable) Insert(ctx context.Context, datos map[string]interface{}) (uint, error) {
	var in intentoInput
	if err := decodeDatos(datos, &in); err != nil {
		return 0, err
	}
	idTest, err := requireID("idtest", in.IDTest)
	if err != nil {
		return 0, err
	}

	ts := now()
	intento := &model.Intento{
		IDTest:     idTest,
		Fecha:      text(in.Fecha),
		Hora:       text(in.Hora),
		Resultados: text(in.Resultados),
	}
	if in.IDUsuario != nil {
		intento.IDUsuario = *in.IDUsuario
	}
	if intento.Fecha == "" {
		intento.Fecha = ts.Format(util.DateFormat)
	}
	if intento.Hora == "" {
		intento.Hora = ts.Format(util.TimeFormat)
	}
	return t.create(ctx, intento)
}

func (t *intentoTable) Update(ctx context.Context, id uint, datos map[string]interface{}) error {
	var in intentoInput
	if err := decodeDatos(datos, &in); err != nil {
		return err
	}
	fields := make(map[string]interface{})
	if in.IDTest != nil {
		idTest, err := requireID("idtest", in.IDTest)
		if err != nil {
			return err
		}
		fields["idtest"] = idTest
	}
	if in.IDUsuario != nil {
		fields["idusuario"] = *in.IDUsuario
	}
	setText(fields, "fecha", in.Fecha)
	setText(fields, "hora", in.Hora)
	setText(fields, "resultados", in.Resultados)
	return t.repo.Update(ctx, id, fields)
}
