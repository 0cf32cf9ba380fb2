package model

type TipoUsuario string

const (
	Alumno   TipoUsuario = "Alumno"
	Profesor TipoUsuario = "Profesor"
)

// Usuario 未填写的 DNI 插入时省略该列，以 NULL 存储，唯一索引不会冲突
//
// swagger:model Usuario
type Usuario struct {
	BaseModel
	Nombre          string      `gorm:"column:nombre;size:100;not null" json:"nombre"`
	Email           string      `gorm:"column:email;size:100;index" json:"email"`
	Contrasena      string      `gorm:"column:contraseña;size:255;not null" json:"contraseña"`
	FechaNacimiento string      `gorm:"column:fecha_nacimiento;size:10" json:"fecha_nacimiento"`
	DNI             string      `gorm:"column:dni;size:20;uniqueIndex;default:null" json:"dni"`
	Foto            string      `gorm:"column:foto;type:mediumtext" json:"foto"`
	TipoUsuario     TipoUsuario `gorm:"column:tipo_usuario;size:20" json:"tipo_usuario"`
	IsOrientador    int         `gorm:"column:is_orientador;not null" json:"is_orientador"`
	IDCentro        *uint       `gorm:"column:id_centro;index" json:"id_centro"`
	Centro          *Centro     `gorm:"foreignKey:IDCentro;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Usuario) TableName() string {
	return "usuarios"
}

// EsOrientador 只有教师才可能是心理辅导员
func (u *Usuario) EsOrientador() bool {
	return u.TipoUsuario == Profesor && u.IsOrientador == 1
}
