package service

import (
	"context"
	"escolavision_backend/internal/model"
	"escolavision_backend/internal/util"
	"fmt"
)

type testInput struct {
	NombreTest *string     `mapstructure:"nombretest"`
	IsVisible  interface{} `mapstructure:"isVisible"`
}

type testTable struct {
	crudTable[model.Test]
}

func newTestTable(repo TestRepository) *testTable {
	return &testTable{crudTable[model.Test]{name: TablaTests, repo: repo}}
}

func (t *testTable) Read(ctx context.Context, q Query) (interface{}, error) {
	if raw, ok := q.Get("id"); ok {
		return t.readID(ctx, raw)
	}
	return t.readAll(ctx)
}

// Insert 未给出 isVisible 时测试默认可见
func (t *testTable) Insert(ctx context.Context, datos map[string]interface{}) (uint, error) {
	var in testInput
	if err := decodeDatos(datos, &in); err != nil {
		return 0, err
	}
	test := &model.Test{
		NombreTest: text(in.NombreTest),
		IsVisible:  flag(in.IsVisible, 1),
	}
	if util.Validate.Var(test.NombreTest, "notblank") != nil {
		return 0, fmt.Errorf("%w: falta nombretest", util.ErrInvalidInput)
	}
	return t.create(ctx, test)
}

func (t *testTable) Update(ctx context.Context, id uint, datos map[string]interface{}) error {
	var in testInput
	if err := decodeDatos(datos, &in); err != nil {
		return err
	}
	fields := make(map[string]interface{})
	setText(fields, "nombretest", in.NombreTest)
	if in.IsVisible != nil {
		fields["isVisible"] = flag(in.IsVisible, 1)
	}
	return t.repo.Update(ctx, id, fields)
}
