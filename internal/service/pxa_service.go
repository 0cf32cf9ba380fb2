package service

import (
	"context"
	"escolavision_backend/internal/model"
	"escolavision_backend/internal/util"
)

type pxaInput struct {
	IDPregunta *uint `mapstructure:"idpregunta"`
	IDArea     *uint `mapstructure:"idarea"`
}

type pxaTable struct {
	crudTable[model.PxA]
	pxa PxARepository
}

func newPxATable(repo PxARepository) *pxaTable {
	return &pxaTable{
		crudTable: crudTable[model.PxA]{name: TablaPxA, repo: repo},
		pxa:       repo,
	}
}

func (t *pxaTable) Read(ctx context.Context, q Query) (interface{}, error) {
	if raw, ok := q.Get("id"); ok {
		return t.readID(ctx, raw)
	}
	if raw, ok := q.Get("idpregunta"); ok {
		id, valid := util.ParseID(raw)
		if !valid {
			return []model.PxA{}, nil
		}
		rows, err := t.pxa.FindByPregunta(ctx, id)
		return orEmpty(rows), err
	}
	return t.readAll(ctx)
}

func (t *pxaTable) Insert(ctx context.Context, datos map[string]interface{}) (uint, error) {
	var in pxaInput
	if err := decodeDatos(datos, &in); err != nil {
		return 0, err
	}
	idPregunta, err := requireID("idpregunta", in.IDPregunta)
	if err != nil {
		return 0, err
	}
	idArea, err := requireID("idarea", in.IDArea)
	if err != nil {
		return 0, err
	}
	return t.create(ctx, &model.PxA{IDPregunta: idPregunta, IDArea: idArea})
}

func (t *pxaTable) Update(ctx context.Context, id uint, datos map[string]interface{}) error {
	var in pxaInput
	if err := decodeDatos(datos, &in); err != nil {
		return err
	}
	fields := make(map[string]interface{})
	if in.IDPregunta != nil {
		idPregunta, err := requireID("idpregunta", in.IDPregunta)
		if err != nil {
			return err
		}
		fields["idpregunta"] = idPregunta
	}
	if in.IDArea != nil {
		idArea, err := requireID("idarea", in.IDArea)
		if err != nil {
			return err
		}
		fields["idarea"] = idArea
	}
	return t.repo.Update(ctx, id, fields)
}
