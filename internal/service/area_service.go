package service

import (
	"context"
	"escolavision_backend/internal/model"
	"escolavision_backend/internal/util"
	"fmt"
)

type areaInput struct {
	Nombre      *string `mapstructure:"nombre"`
	Descripcion *string `mapstructure:"descripción"`
	Logo        *string `mapstructure:"logo"`
}

type areaTable struct {
	crudTable[model.Area]
	maxImageChars func() int
}

func newAreaTable(repo AreaRepository, maxImageChars func() int) *areaTable {
	return &areaTable{
		crudTable:     crudTable[model.Area]{name: TablaAreas, repo: repo},
		maxImageChars: maxImageChars,
	}
}

func (t *areaTable) Read(ctx context.Context, q Query) (interface{}, error) {
	if raw, ok := q.Get("id"); ok {
		return t.readID(ctx, raw)
	}
	return t.readAll(ctx)
}

func (t *areaTable) Insert(ctx context.Context, datos map[string]interface{}) (uint, error) {
	var in areaInput
	if err := decodeDatos(datos, &in); err != nil {
		return 0, err
	}
	a := &model.Area{
		Nombre:      text(in.Nombre),
		Descripcion: text(in.Descripcion),
	}
	if util.Validate.Var(a.Nombre, "notblank") != nil {
		return 0, fmt.Errorf("%w: falta nombre", util.ErrInvalidInput)
	}
	var err error
	if a.Logo, err = util.NormalizeBase64Image(text(in.Logo), t.maxImageChars()); err != nil {
		return 0, err
	}
	return t.create(ctx, a)
}

func (t *areaTable) Update(ctx context.Context, id uint, datos map[string]interface{}) error {
	var in areaInput
	if err := decodeDatos(datos, &in); err != nil {
		return err
	}
	fields := make(map[string]interface{})
	setText(fields, "nombre", in.Nombre)
	setText(fields, "descripción", in.Descripcion)
	if in.Logo != nil {
		logo, err := util.NormalizeBase64Image(*in.Logo, t.maxImageChars())
		if err != nil {
			return err
		}
		fields["logo"] = logo
	}
	return t.repo.Update(ctx, id, fields)
}
