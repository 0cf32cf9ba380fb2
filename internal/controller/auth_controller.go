package controller

import (
	"errors"
	"escolavision_backend/internal/service"
	"escolavision_backend/internal/util"
	"escolavision_backend/pkg/logger"
	"escolavision_backend/pkg/monitoring"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// LoginRequest login.php 请求体；usuario 可以是邮箱或 DNI
// swagger:model LoginRequest
type LoginRequest struct {
	Usuario    string `json:"usuario" example:"12345678A"`
	Contrasena string `json:"contrasena" example:"secreto"`
}

// Login godoc
// @Summary 登录
// @Description 始终返回 HTTP 200，通过 status 字段区分成功与失败。成功时附带 JWT（token）
// @Tags 旧接口
// @Accept json
// @Produce json
// @Param body body LoginRequest true "凭据"
// @Success 200 {object} util.Response
// @Router /login.php [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var body map[string]interface{}
	if err := ctx.ShouldBindJSON(&body); err != nil || body == nil {
		loginError(ctx, "JSON inválido")
		return
	}

	usuario, okUsuario := body["usuario"]
	contrasena, okContrasena := body["contrasena"]
	if !okUsuario || !okContrasena || usuario == nil || contrasena == nil {
		loginError(ctx, "Faltan parámetros necesarios")
		return
	}

	result, err := c.AuthService.Login(ctx.Request.Context(), cast.ToString(usuario), cast.ToString(contrasena))
	switch {
	case errors.Is(err, util.ErrUserNotFound), errors.Is(err, util.ErrInvalidCredentials):
		monitoring.LoginAttempts.WithLabelValues("rejected").Inc()
		loginError(ctx, err.Error())
		return
	case err != nil:
		monitoring.LoginAttempts.WithLabelValues("error").Inc()
		logger.Log.Error("Login failed", zap.Error(err))
		loginError(ctx, "Error en la base de datos")
		return
	}

	monitoring.LoginAttempts.WithLabelValues("success").Inc()
	util.SuccessWith(ctx, "Login exitoso", gin.H{
		"id":            result.ID,
		"nombre":        result.Nombre,
		"dni":           result.DNI,
		"tipo":          result.Tipo,
		"is_orientador": result.IsOrientador,
		"id_centro":     result.IDCentro,
		"token":         result.Token,
	})
}

func loginError(ctx *gin.Context, message string) {
	util.Error(ctx, http.StatusOK, message)
}
