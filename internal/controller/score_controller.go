package controller

import (
	"errors"
	"escolavision_backend/internal/service"
	"escolavision_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ScoreController struct {
	ScoreService *service.ScoreService
}

func NewScoreController(scoreService *service.ScoreService) *ScoreController {
	return &ScoreController{ScoreService: scoreService}
}

// Submit godoc
// @Summary 提交测试答案
// @Description 在服务器端按领域计算平均分并保存作答记录；idusuario 为 0 时只计算不保存
// @Tags 测试
// @Accept json
// @Produce json
// @Param id path int true "测试 ID"
// @Param body body service.Submission true "respuestas 的键为问题 ID，值为 0 到 10"
// @Success 201 {object} util.Response "包含 id 与 resultados"
// @Success 200 {object} util.Response "访客：只返回 resultados"
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/tests/{id}/respuestas [post]
func (c *ScoreController) Submit(ctx *gin.Context) {
	idTest, ok := util.ParseID(ctx.Param("id"))
	if !ok || idTest == 0 {
		util.BadRequest(ctx, "ID de test no válido")
		return
	}

	var req service.Submission
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "JSON inválido")
		return
	}

	result, err := c.ScoreService.Submit(ctx.Request.Context(), idTest, req)
	switch {
	case errors.Is(err, util.ErrInvalidInput):
		util.BadRequest(ctx, err.Error())
		return
	case errors.Is(err, util.ErrNotFound):
		util.NotFound(ctx, "Test no encontrado")
		return
	case err != nil:
		util.LogInternalError(ctx, err)
		return
	}

	extra := gin.H{"id": result.ID, "resultados": result.Resultados}
	if req.IDUsuario == 0 {
		util.SuccessWith(ctx, "Resultados calculados", extra)
		return
	}
	util.Created(ctx, "Intento registrado", extra)
}
