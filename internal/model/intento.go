package model

import (
	"strconv"
	"strings"
)

// ResultadosSeparator 各领域得分之间的分隔符
const ResultadosSeparator = ";"

// swagger:model Intento
type Intento struct {
	BaseModel
	IDTest     uint   `gorm:"column:idtest;not null;index" json:"idtest"`
	IDUsuario  uint   `gorm:"column:idusuario;not null;index" json:"idusuario"`
	Fecha      string `gorm:"column:fecha;size:10" json:"fecha"`
	Hora       string `gorm:"column:hora;size:8" json:"hora"`
	Resultados string `gorm:"column:resultados;size:255" json:"resultados"`
}

func (Intento) TableName() string {
	return "intentos"
}

// Scores 解析 resultados，无法解析的项被跳过
func (i *Intento) Scores() []float64 {
	if strings.TrimSpace(i.Resultados) == "" {
		return nil
	}
	parts := strings.Split(i.Resultados, ResultadosSeparator)
	scores := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			continue
		}
		scores = append(scores, v)
	}
	return scores
}
