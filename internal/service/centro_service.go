package service

import (
	"context"
	"escolavision_backend/internal/model"
	"strings"
)

type centroInput struct {
	ComunidadAutonoma      *string `mapstructure:"comunidad_autonoma"`
	Provincia              *string `mapstructure:"provincia"`
	Localidad              *string `mapstructure:"localidad"`
	DenominacionGenerica   *string `mapstructure:"denominacion_generica"`
	DenominacionEspecifica *string `mapstructure:"denominacion_especifica"`
	Codigo                 *string `mapstructure:"codigo"`
	Naturaleza             *string `mapstructure:"naturaleza"`
	Domicilio              *string `mapstructure:"domicilio"`
	CodigoPostal           *string `mapstructure:"codigo_postal"`
	Telefono               *string `mapstructure:"telefono"`
	TelefonoSecundario     *string `mapstructure:"telefono_secundario"`
}

// columns 列名与输入字段的对应关系，Insert 与 Update 共用
func (in *centroInput) columns() map[string]*string {
	return map[string]*string{
		"comunidad_autonoma":      in.ComunidadAutonoma,
		"provincia":               in.Provincia,
		"localidad":               in.Localidad,
		"denominacion_generica":   in.DenominacionGenerica,
		"denominacion_especifica": in.DenominacionEspecifica,
		"codigo":                  in.Codigo,
		"naturaleza":              in.Naturaleza,
		"domicilio":               in.Domicilio,
		"codigo_postal":           in.CodigoPostal,
		"telefono":                in.Telefono,
		"telefono_secundario":     in.TelefonoSecundario,
	}
}

type centroTable struct {
	crudTable[model.Centro]
	centros CentroRepository
}

func newCentroTable(repo CentroRepository) *centroTable {
	return &centroTable{
		crudTable: crudTable[model.Centro]{name: TablaCentros, repo: repo},
		centros:   repo,
	}
}

// Read 按 localidad 查询时只返回 id 与 denominacion_especifica
func (t *centroTable) Read(ctx context.Context, q Query) (interface{}, error) {
	if raw, ok := q.Get("id"); ok {
		return t.readID(ctx, raw)
	}
	if localidad, ok := q.Get("localidad"); ok {
		if strings.TrimSpace(localidad) == "" {
			return []model.CentroResumen{}, nil
		}
		rows, err := t.centros.FindByLocalidad(ctx, localidad)
		return orEmpty(rows), err
	}
	return t.readAll(ctx)
}

func (t *centroTable) Insert(ctx context.Context, datos map[string]interface{}) (uint, error) {
	var in centroInput
	if err := decodeDatos(datos, &in); err != nil {
		return 0, err
	}
	return t.create(ctx, &model.Centro{
		ComunidadAutonoma:      text(in.ComunidadAutonoma),
		Provincia:              text(in.Provincia),
		Localidad:              text(in.Localidad),
		DenominacionGenerica:   text(in.DenominacionGenerica),
		DenominacionEspecifica: text(in.DenominacionEspecifica),
		Codigo:                 text(in.Codigo),
		Naturaleza:             text(in.Naturaleza),
		Domicilio:              text(in.Domicilio),
		CodigoPostal:           text(in.CodigoPostal),
		Telefono:               truncate(text(in.Telefono), maxTelefono),
		TelefonoSecundario:     truncate(text(in.TelefonoSecundario), maxTelefono),
	})
}

func (t *centroTable) Update(ctx context.Context, id uint, datos map[string]interface{}) error {
	var in centroInput
	if err := decodeDatos(datos, &in); err != nil {
		return err
	}
	fields := make(map[string]interface{})
	for column, value := range in.columns() {
		setText(fields, column, value)
	}
	for _, column := range []string{"telefono", "telefono_secundario"} {
		if v, ok := fields[column].(string); ok {
			fields[column] = truncate(v, maxTelefono)
		}
	}
	return t.repo.Update(ctx, id, fields)
}
