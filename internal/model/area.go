package model

// swagger:model Area
type Area struct {
	BaseModel
	Nombre      string `gorm:"column:nombre;size:100;not null" json:"nombre"`
	Descripcion string `gorm:"column:descripción;type:text" json:"descripción"`
	Logo        string `gorm:"column:logo;type:mediumtext" json:"logo"`
}

func (Area) TableName() string {
	return "area"
}
