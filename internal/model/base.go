package model

// BaseModel 旧系统的表都只有自增主键，没有时间戳与软删除
type BaseModel struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
}

func (b *BaseModel) GetID() uint {
	return b.ID
}

func (b *BaseModel) SetID(id uint) {
	b.ID = id
}
