package controller

import (
	"escolavision_backend/internal/service"
	"escolavision_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// GetEstadisticas godoc
// @Summary 中心统计
// @Description 作答总数、平均分、各测试的作答数与平均分、可见测试数、作答最多的五个测试
// @Tags 统计
// @Produce json
// @Param id_centro query int false "中心 ID，省略时统计全部"
// @Success 200 {object} util.Response{estadisticas=service.Dashboard}
// @Failure 400 {object} util.Response
// @Router /api/estadisticas [get]
func (c *DashboardController) GetEstadisticas(ctx *gin.Context) {
	var idCentro *uint
	if raw, ok := ctx.GetQuery("id_centro"); ok {
		id, valid := util.ParseID(raw)
		if !valid {
			util.BadRequest(ctx, "id_centro no válido")
			return
		}
		idCentro = &id
	}

	dashboard, err := c.DashboardService.GetCentroDashboard(ctx.Request.Context(), idCentro)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.SuccessWith(ctx, "Estadísticas", gin.H{"estadisticas": dashboard})
}
