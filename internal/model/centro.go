package model

// swagger:model Centro
type Centro struct {
	BaseModel
	ComunidadAutonoma      string `gorm:"column:comunidad_autonoma;size:100" json:"comunidad_autonoma"`
	Provincia              string `gorm:"column:provincia;size:100" json:"provincia"`
	Localidad              string `gorm:"column:localidad;size:150;index" json:"localidad"`
	DenominacionGenerica   string `gorm:"column:denominacion_generica;size:255" json:"denominacion_generica"`
	DenominacionEspecifica string `gorm:"column:denominacion_especifica;size:255" json:"denominacion_especifica"`
	Codigo                 string `gorm:"column:codigo;size:20" json:"codigo"`
	Naturaleza             string `gorm:"column:naturaleza;size:50" json:"naturaleza"`
	Domicilio              string `gorm:"column:domicilio;size:255" json:"domicilio"`
	CodigoPostal           string `gorm:"column:codigo_postal;size:10" json:"codigo_postal"`
	Telefono               string `gorm:"column:telefono;size:20" json:"telefono"`
	TelefonoSecundario     string `gorm:"column:telefono_secundario;size:20" json:"telefono_secundario"`
}

func (Centro) TableName() string {
	return "centros"
}

// CentroResumen 按地区查询时只返回名称和 ID（注册页下拉框）
type CentroResumen struct {
	ID                     uint   `json:"id"`
	DenominacionEspecifica string `json:"denominacion_especifica"`
}
