package app

import (
	"escolavision_backend/docs"
	"escolavision_backend/internal/config"
	"escolavision_backend/internal/middleware"
	"escolavision_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 旧接口（桌面端与移动端），路径保持 *.php，不需要令牌
	a.registerLegacyRoutes(router, c)

	// 2. 公共接口
	a.registerPublicRoutes(router, c)

	// 3. 心理辅导员接口
	orientador := router.Group("/api")
	orientador.Use(middleware.AuthMiddleware(cfg), middleware.OrientadorMiddleware())
	{
		orientador.POST("/centros/import", c.imports.Import)
	}
}

func (a *App) registerLegacyRoutes(router *gin.Engine, c *controllers) {
	router.GET("/leer.php", c.crud.Leer)
	router.POST("/insertar.php", c.crud.Insertar)
	router.PUT("/actualizar.php", c.crud.Actualizar)
	router.DELETE("/borrar.php", c.crud.Borrar)
	router.POST("/login.php", c.auth.Login)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		public.POST("/tests/:id/respuestas", c.score.Submit)
		public.GET("/estadisticas", c.dashboard.GetEstadisticas)

		// 地理数据代理（注册页的级联下拉框）
		geo := public.Group("/geo")
		{
			geo.GET("/comunidades", c.geo.Comunidades)
			geo.GET("/provincias", c.geo.Provincias)
			geo.GET("/municipios", c.geo.Municipios)
		}
	}
}
