package model

// PxA 问题与评估领域的多对多映射
// swagger:model PxA
type PxA struct {
	BaseModel
	IDPregunta uint      `gorm:"column:idpregunta;not null;index" json:"idpregunta"`
	IDArea     uint      `gorm:"column:idarea;not null;index" json:"idarea"`
	Pregunta   *Pregunta `gorm:"foreignKey:IDPregunta;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Area       *Area     `gorm:"foreignKey:IDArea;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (PxA) TableName() string {
	return "pxa"
}
