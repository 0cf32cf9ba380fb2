package repository

import (
	"context"
	"errors"
	"escolavision_backend/internal/util"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// CRUDRepository 七张表共用的增删改查，具体表的仓库嵌入它再补充各自的查询
type CRUDRepository[T any] struct {
	DB *gorm.DB
}

func (r *CRUDRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	var rows []T
	err := r.DB.WithContext(ctx).Find(&rows).Error
	return rows, translateError(err, util.ErrMissingParent)
}

func (r *CRUDRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var row T
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translateError(err, util.ErrMissingParent)
	}
	return &row, nil
}

func (r *CRUDRepository[T]) Create(ctx context.Context, row *T) error {
	return translateError(r.DB.WithContext(ctx).Create(row).Error, util.ErrMissingParent)
}

// Update 只写入 fields 中给出的列
func (r *CRUDRepository[T]) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return util.ErrNothingToUpdate
	}
	err := r.DB.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields).Error
	return translateError(err, util.ErrMissingParent)
}

func (r *CRUDRepository[T]) Delete(ctx context.Context, id uint) error {
	err := r.DB.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error
	return translateError(err, util.ErrInUse)
}

// translateError 将驱动错误转换为业务错误。
// 外键冲突在删除时表示仍被引用，在写入时表示父记录不存在，由调用方通过 onForeignKey 指定。
func translateError(err error, onForeignKey error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return util.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", util.ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", onForeignKey, err)
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1062:
			return fmt.Errorf("%w: %v", util.ErrDuplicate, err)
		case 1451:
			return fmt.Errorf("%w: %v", util.ErrInUse, err)
		case 1452:
			return fmt.Errorf("%w: %v", util.ErrMissingParent, err)
		}
	}
	return err
}
