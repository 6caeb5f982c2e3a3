package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"worktime-backend/internal/config"
	"worktime-backend/internal/handlers"
	"worktime-backend/internal/holiday"
	"worktime-backend/internal/repository"
	"worktime-backend/internal/worktime"
)

func Register(router *gin.Engine, db *gorm.DB, calendar *holiday.Calendar, cfg config.Config, logger *logrus.Logger) {
	router.Use(corsMiddleware(cfg.AllowedOrigins()))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "worktime-backend"})
	})

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	store := repository.NewGormStore(db)
	service := worktime.NewService(store, logger)

	worktimeHandler := handlers.NewWorktimeHandler(service, logger)
	streamHandler := handlers.NewStreamHandler(service, logger, cfg.PushInterval())
	holidayHandler := handlers.NewHolidayHandler(calendar)

	api := router.Group("/api")
	{
		api.GET("/holidays/:year", holidayHandler.List)

		employees := api.Group("/employees/:id")
		{
			employees.GET("/overview", worktimeHandler.Overview)
			employees.GET("/data", worktimeHandler.EmployeeData)
			employees.GET("/daily/:dayOfYear", worktimeHandler.Daily)
			employees.GET("/weekly/:week", worktimeHandler.Weekly)
			employees.GET("/monthly/:month", worktimeHandler.Monthly)
			employees.GET("/monthly/:month/total", worktimeHandler.MonthlyTotal)
			employees.GET("/events", streamHandler.Events)
		}
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowHeaders = []string{"Authorization", "Content-Type"}
	return cors.New(corsConfig)
}
