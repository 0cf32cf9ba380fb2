package util

import (
	"escolavision_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response 旧客户端（桌面端、移动端）依赖的统一响应结构
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func respond(c *gin.Context, code int, status, message string, extra gin.H) {
	body := gin.H{"status": status, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(code, body)
}

func Success(c *gin.Context, message string) {
	respond(c, http.StatusOK, StatusSuccess, message, nil)
}

// SuccessWith 成功响应并附带额外字段
func SuccessWith(c *gin.Context, message string, extra gin.H) {
	respond(c, http.StatusOK, StatusSuccess, message, extra)
}

func Created(c *gin.Context, message string, extra gin.H) {
	respond(c, http.StatusCreated, StatusSuccess, message, extra)
}

func Error(c *gin.Context, code int, message string) {
	respond(c, code, StatusError, message, nil)
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

func ServiceUnavailable(c *gin.Context, message string) {
	Error(c, http.StatusServiceUnavailable, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err), zap.String("path", c.FullPath()))
	InternalServerError(c)
}
