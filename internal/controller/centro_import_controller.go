package controller

import (
	"errors"
	"escolavision_backend/internal/service"
	"escolavision_backend/internal/util"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
)

// maxImportSize 官方名录约 30000 所中心
const maxImportSize = 64 << 20

type CentroImportController struct {
	ImportService *service.CentroImportService
}

func NewCentroImportController(importService *service.CentroImportService) *CentroImportController {
	return &CentroImportController{ImportService: importService}
}

// Import godoc
// @Summary 批量导入中心名录
// @Description 上传 {"Listado de centros": [...]} 格式的 JSON，按批写入，每批一个事务
// @Tags 中心
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "中心名录 JSON"
// @Success 200 {object} util.Response "total、importados、lotesFallidos"
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/centros/import [post]
func (c *CentroImportController) Import(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "Falta el archivo (campo file)")
		return
	}
	if fileHeader.Size > maxImportSize {
		util.BadRequest(ctx, fmt.Sprintf("El archivo supera los %d MB", maxImportSize>>20))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImportSize))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	result, err := c.ImportService.ImportUpload(ctx.Request.Context(), fileHeader.Filename, data)
	if errors.Is(err, util.ErrInvalidInput) {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.SuccessWith(ctx, "Importación terminada", gin.H{
		"total":         result.Total,
		"importados":    result.Importados,
		"lotesFallidos": result.LotesFallidos,
		"archivo":       result.Archivo,
	})
}
