package controller

import (
	"context"
	"encoding/json"
	"errors"
	"escolavision_backend/internal/service"
	"escolavision_backend/internal/util"
	"escolavision_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GeoController struct {
	GeoService *service.GeoService
}

func NewGeoController(geoService *service.GeoService) *GeoController {
	return &GeoController{GeoService: geoService}
}

// Comunidades godoc
// @Summary 自治区列表
// @Tags 地理
// @Produce json
// @Success 200 {object} map[string][]object
// @Failure 502 {object} util.Response
// @Router /api/geo/comunidades [get]
func (c *GeoController) Comunidades(ctx *gin.Context) {
	c.respond(ctx, func(rctx context.Context) (json.RawMessage, error) {
		return c.GeoService.Comunidades(rctx)
	})
}

// Provincias godoc
// @Summary 省份列表
// @Tags 地理
// @Produce json
// @Param CCOM query string true "自治区编码（两位）"
// @Success 200 {object} map[string][]object
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/geo/provincias [get]
func (c *GeoController) Provincias(ctx *gin.Context) {
	ccom := ctx.Query("CCOM")
	c.respond(ctx, func(rctx context.Context) (json.RawMessage, error) {
		return c.GeoService.Provincias(rctx, ccom)
	})
}

// Municipios godoc
// @Summary 市镇列表
// @Tags 地理
// @Produce json
// @Param CPRO query string true "省份编码（两位）"
// @Success 200 {object} map[string][]object
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/geo/municipios [get]
func (c *GeoController) Municipios(ctx *gin.Context) {
	cpro := ctx.Query("CPRO")
	c.respond(ctx, func(rctx context.Context) (json.RawMessage, error) {
		return c.GeoService.Municipios(rctx, cpro)
	})
}

func (c *GeoController) respond(ctx *gin.Context, fetch func(context.Context) (json.RawMessage, error)) {
	data, err := fetch(ctx.Request.Context())
	switch {
	case errors.Is(err, util.ErrInvalidInput):
		util.BadRequest(ctx, err.Error())
		return
	case errors.Is(err, util.ErrUpstream):
		logger.Log.Warn("geoapi unavailable", zap.Error(err))
		util.Error(ctx, http.StatusBadGateway, util.ErrUpstream.Error())
		return
	case err != nil:
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": data})
}
