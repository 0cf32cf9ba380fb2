package service

import (
	"context"
	"escolavision_backend/internal/model"
)

type preguntaInput struct {
	IDTest    *uint   `mapstructure:"idtest"`
	Enunciado *string `mapstructure:"enunciado"`
	Titulo    *string `mapstructure:"titulo"`
}

type preguntaTable struct {
	crudTable[model.Pregunta]
	preguntas PreguntaRepository
}

func newPreguntaTable(repo PreguntaRepository) *preguntaTable {
	return &preguntaTable{
		crudTable: crudTable[model.Pregunta]{name: TablaPreguntas, repo: repo},
		preguntas: repo,
	}
}

func (t *preguntaTable) Read(ctx context.Context, q Query) (interface{}, error) {
	if raw, ok := q.Get("id"); ok {
		return t.readID(ctx, raw)
	}
	if ultima, _ := q.Get("ultima"); ultima == "true" {
		rows, err := t.preguntas.FindLatest(ctx)
		return orEmpty(rows), err
	}
	return t.readAll(ctx)
}

func (t *preguntaTable) Insert(ctx context.Context, datos map[string]interface{}) (uint, error) {
	var in preguntaInput
	if err := decodeDatos(datos, &in); err != nil {
		return 0, err
	}
	idTest, err := requireID("idtest", in.IDTest)
	if err != nil {
		return 0, err
	}
	return t.create(ctx, &model.Pregunta{
		IDTest:    idTest,
		Enunciado: text(in.Enunciado),
		Titulo:    text(in.Titulo),
	})
}

func (t *preguntaTable) Update(ctx context.Context, id uint, datos map[string]interface{}) error {
	var in preguntaInput
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
	setText(fields, "enunciado", in.Enunciado)
	setText(fields, "titulo", in.Titulo)
	return t.repo.Update(ctx, id, fields)
}
