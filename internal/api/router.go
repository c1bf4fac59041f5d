package api

import (
	"github.com/gin-gonic/gin"

	"github.com/daybookhq/daybook/internal/analysis"
	"github.com/daybookhq/daybook/internal/api/handlers"
	"github.com/daybookhq/daybook/internal/auth"
	"github.com/daybookhq/daybook/internal/repository"
	"github.com/daybookhq/daybook/internal/services"
)

// NewRouter wires services and handlers onto a gin engine.
func NewRouter(db *repository.Database, analyzer analysis.Analyzer) *gin.Engine {
	authSvc := auth.NewService(db.DB)
	timelineSvc := services.NewTimelineService(db.DB)
	matterSvc := services.NewCoreFocusService(db.DB, timelineSvc)
	dreamSvc := services.NewDreamService(db.DB)

	authHandler := handlers.NewAuthHandler(authSvc)
	timelineHandler := handlers.NewTimelineHandler(timelineSvc)
	matterHandler := handlers.NewMatterHandler(matterSvc)
	goalHandler := handlers.NewGoalHandler(dreamSvc)
	memoryHandler := handlers.NewMemoryHandler(db.DB, analyzer)

	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(500, gin.H{"error": "database unreachable"})
			return
		}
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	v1 := r.Group("/v1", auth.Middleware(authSvc))
	{
		v1.POST("/timeline/start", timelineHandler.Start)
		v1.POST("/timeline/end", timelineHandler.End)
		v1.GET("/timeline/daily", timelineHandler.Daily)
		v1.GET("/timeline/current", timelineHandler.Current)

		v1.POST("/corefocus/important", matterHandler.Create)
		v1.GET("/corefocus/important/daily", matterHandler.Daily)
		v1.POST("/corefocus/important/:id/start", matterHandler.Start)
		v1.POST("/corefocus/important/:id/end", matterHandler.End)
		v1.GET("/corefocus/important/:id/activities", matterHandler.Activities)

		v1.POST("/dreams", goalHandler.Create)
		v1.GET("/dreams", goalHandler.List)
		v1.GET("/dreams/:id", goalHandler.Get)
		v1.POST("/dreams/:id/progress", goalHandler.Progress)
		v1.GET("/dreams/:id/history", goalHandler.History)

		v1.POST("/memories", memoryHandler.Create)
		v1.GET("/memories", memoryHandler.List)
		v1.GET("/memories/:id", memoryHandler.Get)
		v1.PATCH("/memories/:id", memoryHandler.Update)
		v1.DELETE("/memories/:id", memoryHandler.Delete)
		v1.POST("/memories/analyze", memoryHandler.Analyze)
	}

	return r
}
