// Package inmem 是仓库接口的内存实现，模拟 MySQL 的外键与唯一约束，供服务层和控制器测试使用。
package inmem

import (
	"context"
	"encoding/json"
	"errors"
	"escolavision_backend/internal/util"
	"sort"
	"sync"
)

type record[T any] interface {
	*T
	GetID() uint
	SetID(id uint)
}

// Table 单张表；beforeWrite / beforeDelete 用于实现约束
type Table[T any, P record[T]] struct {
	mu   sync.RWMutex
	rows map[uint]*T
	next uint

	beforeWrite  func(row *T) error
	beforeDelete func(id uint) error
}

func newTable[T any, P record[T]]() *Table[T, P] {
	return &Table[T, P]{rows: make(map[uint]*T)}
}

func (t *Table[T, P]) query(match func(row *T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		if match == nil || match(row) {
			rows = append(rows, *row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return P(&rows[i]).GetID() < P(&rows[j]).GetID() })
	return rows
}

func (t *Table[T, P]) exists(id uint) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.rows[id]
	return ok
}

func (t *Table[T, P]) any(match func(row *T) bool) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, row := range t.rows {
		if match(row) {
			return true
		}
	}
	return false
}

func (t *Table[T, P]) FindAll(ctx context.Context) ([]T, error) {
	return t.query(nil), nil
}

func (t *Table[T, P]) FindByID(ctx context.Context, id uint) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (t *Table[T, P]) Create(ctx context.Context, row *T) error {
	if t.beforeWrite != nil {
		if err := t.beforeWrite(row); err != nil {
			return err
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	P(row).SetID(t.next)
	cp := *row
	t.rows[t.next] = &cp
	return nil
}

// Update 与 gorm 的 Updates(map) 一致：只覆盖给出的列。
// 所有模型的 JSON 键与列名相同，所以借助 JSON 完成列到字段的映射。
func (t *Table[T, P]) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return util.ErrNothingToUpdate
	}

	current, err := t.FindByID(ctx, id)
	if errors.Is(err, util.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	raw, err := json.Marshal(current)
	if err != nil {
		return err
	}
	merged := map[string]interface{}{}
	if err := json.Unmarshal(raw, &merged); err != nil {
		return err
	}
	for k, v := range fields {
		merged[k] = v
	}
	raw, err = json.Marshal(merged)
	if err != nil {
		return err
	}
	var updated T
	if err := json.Unmarshal(raw, &updated); err != nil {
		return err
	}
	P(&updated).SetID(id)

	if t.beforeWrite != nil {
		if err := t.beforeWrite(&updated); err != nil {
			return err
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[id] = &updated
	return nil
}

func (t *Table[T, P]) Delete(ctx context.Context, id uint) error {
	if t.beforeDelete != nil {
		if err := t.beforeDelete(id); err != nil {
			return err
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.rows, id)
	return nil
}

// Len 当前行数
func (t *Table[T, P]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}
