package model

// swagger:model Test
type Test struct {
	BaseModel
	NombreTest string `gorm:"column:nombretest;size:255;not null" json:"nombretest"`
	// 不使用 gorm default 标签：零值 0（隐藏）也必须写入
	IsVisible int `gorm:"column:isVisible;not null" json:"isVisible"`
}

func (Test) TableName() string {
	return "test"
}

func (t *Test) Visible() bool {
	return t.IsVisible == 1
}
