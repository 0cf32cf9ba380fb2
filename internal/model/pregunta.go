package model

// swagger:model Pregunta
type Pregunta struct {
	BaseModel
	IDTest    uint   `gorm:"column:idtest;not null;index" json:"idtest"`
	Enunciado string `gorm:"column:enunciado;type:text" json:"enunciado"`
	Titulo    string `gorm:"column:titulo;size:255" json:"titulo"`
	Test      *Test  `gorm:"foreignKey:IDTest;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Pregunta) TableName() string {
	return "pregunta"
}
