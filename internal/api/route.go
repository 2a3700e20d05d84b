package api

import (
	"Spotlight/internal/api/middleware"
	"Spotlight/internal/pkg/logger"
	"Spotlight/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			response.Success(c, "pong")
		})

		videoGroup := apiGroup.Group("/videos")
		{
			videoGroup.GET("/trending", group.VideoHandler.Trending)
			videoGroup.GET("/search", group.VideoHandler.Search)
			videoGroup.GET("/hero", group.VideoHandler.Hero)
			videoGroup.GET("/ranking", group.VideoHandler.Ranking)
			videoGroup.GET("/:id", group.VideoHandler.GetVideo)
			videoGroup.POST("/:id/support", group.VideoHandler.Support)
		}
	}

	return r
}
