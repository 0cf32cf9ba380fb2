package controller

import (
	"errors"
	"escolavision_backend/internal/service"
	"escolavision_backend/internal/util"
	"escolavision_backend/pkg/logger"
	"escolavision_backend/pkg/monitoring"
	"fmt"
	"net/http"
	"unicode"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgTablaNoReconocida    = "Tabla no reconocida o no especificada."
	msgDatosInsercion       = "Datos no especificados para la inserción."
	msgDatosActualizacion   = "Datos no especificados para la actualización o ID no proporcionado."
	msgIDNoEspecificado     = "ID no especificado."
	msgDNIRegistrado        = "El DNI ya está registrado"
	msgRegistroNoEncontrado = "Registro no encontrado"
)

// CRUDController 旧客户端使用的 leer / insertar / actualizar / borrar 接口
type CRUDController struct {
	Tables *service.TableService
}

func NewCRUDController(tables *service.TableService) *CRUDController {
	return &CRUDController{Tables: tables}
}

// InsertRequest insertar.php 请求体
// swagger:model InsertRequest
type InsertRequest struct {
	Tabla string                 `json:"tabla" example:"tests"`
	Datos map[string]interface{} `json:"datos"`
}

// UpdateRequest actualizar.php 请求体，id 可以是数字或字符串
// swagger:model UpdateRequest
type UpdateRequest struct {
	Tabla string                 `json:"tabla" example:"usuarios"`
	Datos map[string]interface{} `json:"datos"`
	ID    interface{}            `json:"id" swaggertype:"integer" example:"5"`
}

// DeleteRequest borrar.php 请求体
// swagger:model DeleteRequest
type DeleteRequest struct {
	Tabla string      `json:"tabla" example:"tests"`
	ID    interface{} `json:"id" swaggertype:"integer" example:"5"`
}

// Leer godoc
// @Summary 读取表数据
// @Description 按 tabla 读取；可按 id、dni、id_centro、localidad、idpregunta 或 ultima=true 过滤
// @Tags 旧接口
// @Produce json
// @Param tabla query string true "usuarios | areas | preguntas | intentos | pxa | tests | centros"
// @Param id query int false "按 ID 读取"
// @Param dni query string false "usuarios: 按 DNI"
// @Param id_centro query int false "usuarios / intentos: 按中心"
// @Param localidad query string false "centros: 按地区"
// @Param idpregunta query int false "pxa: 按问题"
// @Param ultima query string false "preguntas: 最新一条"
// @Success 200 {object} map[string][]object
// @Failure 400 {object} util.Response
// @Router /leer.php [get]
func (c *CRUDController) Leer(ctx *gin.Context) {
	tabla := ctx.Query("tabla")
	table, err := c.Tables.Table(tabla)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": util.ErrUnknownTable.Error()})
		return
	}

	q := service.Query{}
	for key, values := range ctx.Request.URL.Query() {
		if len(values) > 0 {
			q[key] = values[0]
		}
	}

	rows, err := table.Read(ctx.Request.Context(), q)
	if err != nil {
		record(table.Name(), "leer", err)
		util.LogInternalError(ctx, err)
		return
	}
	record(table.Name(), "leer", nil)
	ctx.JSON(http.StatusOK, gin.H{table.Name(): rows})
}

// Insertar godoc
// @Summary 插入一条记录
// @Description usuarios 的密码以 bcrypt 哈希保存；tests 的 isVisible 默认为 1
// @Tags 旧接口
// @Accept json
// @Produce json
// @Param body body InsertRequest true "tabla 与 datos"
// @Success 201 {object} util.Response "包含新记录的 id"
// @Failure 400 {object} util.Response "表名未知、缺少数据或数据无效"
// @Failure 409 {object} util.Response "DNI 已注册"
// @Failure 503 {object} util.Response "数据库错误"
// @Router /insertar.php [post]
func (c *CRUDController) Insertar(ctx *gin.Context) {
	var req InsertRequest
	_ = ctx.ShouldBindJSON(&req)

	table, err := c.Tables.Table(req.Tabla)
	if err != nil {
		util.BadRequest(ctx, msgTablaNoReconocida)
		return
	}
	if req.Datos == nil {
		util.BadRequest(ctx, msgDatosInsercion)
		return
	}

	id, err := table.Insert(ctx.Request.Context(), req.Datos)
	record(table.Name(), "insertar", err)
	if err != nil {
		c.writeError(ctx, err, fmt.Sprintf("No se puede insertar el registro en la tabla %s.", ucfirst(table.Name())))
		return
	}

	util.Created(ctx, fmt.Sprintf("El registro fue insertado con éxito en la tabla %s.", ucfirst(table.Name())), gin.H{"id": id})
}

// Actualizar godoc
// @Summary 更新一条记录
// @Description 只写入 datos 中给出的列；usuarios 忽略空字符串并重新哈希密码
// @Tags 旧接口
// @Accept json
// @Produce json
// @Param body body UpdateRequest true "tabla、datos 与 id"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /actualizar.php [put]
func (c *CRUDController) Actualizar(ctx *gin.Context) {
	var req UpdateRequest
	_ = ctx.ShouldBindJSON(&req)

	table, err := c.Tables.Table(req.Tabla)
	if err != nil {
		util.BadRequest(ctx, msgTablaNoReconocida)
		return
	}
	id, ok := util.ParseID(req.ID)
	if req.Datos == nil || !ok {
		util.BadRequest(ctx, msgDatosActualizacion)
		return
	}

	err = table.Update(ctx.Request.Context(), id, req.Datos)
	record(table.Name(), "actualizar", err)
	if err != nil {
		c.writeError(ctx, err, fmt.Sprintf("No se puede actualizar el registro en la tabla %s.", ucfirst(table.Name())))
		return
	}

	util.Success(ctx, fmt.Sprintf("El registro de la tabla %s fue actualizado con éxito.", ucfirst(table.Name())))
}

// Borrar godoc
// @Summary 删除一条记录
// @Description 仍被其他记录引用（外键）时返回 503，记录保持不变
// @Tags 旧接口
// @Accept json
// @Produce json
// @Param body body DeleteRequest true "tabla 与 id"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /borrar.php [delete]
func (c *CRUDController) Borrar(ctx *gin.Context) {
	var req DeleteRequest
	_ = ctx.ShouldBindJSON(&req)

	table, err := c.Tables.Table(req.Tabla)
	if err != nil {
		util.BadRequest(ctx, msgTablaNoReconocida)
		return
	}
	id, ok := util.ParseID(req.ID)
	if !ok {
		util.BadRequest(ctx, msgIDNoEspecificado)
		return
	}

	err = table.Delete(ctx.Request.Context(), id)
	record(table.Name(), "borrar", err)
	if err != nil {
		logger.Log.Warn("Delete rejected",
			zap.String("tabla", table.Name()),
			zap.Uint("id", id),
			zap.Error(err))
		util.ServiceUnavailable(ctx, "Error al eliminar el registro: "+err.Error())
		return
	}

	util.Success(ctx, fmt.Sprintf("El registro con ID %d fue borrado con éxito.", id))
}

// writeError 插入与更新共用的错误映射；未识别的错误按 503 处理
func (c *CRUDController) writeError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, util.ErrDuplicate):
		util.Conflict(ctx, msgDNIRegistrado)
	case errors.Is(err, util.ErrNothingToUpdate):
		util.BadRequest(ctx, util.ErrNothingToUpdate.Error())
	case errors.Is(err, util.ErrInvalidInput), errors.Is(err, util.ErrMissingParent):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrNotFound):
		util.NotFound(ctx, msgRegistroNoEncontrado)
	default:
		logger.Log.Error("Write failed", zap.String("path", ctx.FullPath()), zap.Error(err))
		util.ServiceUnavailable(ctx, fallback)
	}
}

func record(tabla, operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	monitoring.TableOperations.WithLabelValues(tabla, operation, outcome).Inc()
}

// ucfirst 表名首字母大写，用于提示信息
func ucfirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
