package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kmonkmol38/DashNew1/internal/api/handlers"
	"github.com/kmonkmol38/DashNew1/internal/api/middleware"
	"github.com/kmonkmol38/DashNew1/internal/service"
)

// NewRouter wires the dashboard API. The presentation layer is a separate
// frontend, so CORS is always on.
func NewRouter(dashboard *service.DashboardService, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Logger(),
		middleware.Recovery(),
	)

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	sessionHandler := handlers.NewSessionHandler(dashboard)
	sessionGroup := apiGroup.Group("/session")
	{
		sessionGroup.POST("/upload", sessionHandler.Upload)
		sessionGroup.GET("", sessionHandler.Info)
		sessionGroup.GET("/archives", sessionHandler.Archives)
		sessionGroup.DELETE("", sessionHandler.Reset)
	}

	dashboardHandler := handlers.NewDashboardHandler(dashboard)
	{
		apiGroup.PUT("/filters/shared", dashboardHandler.SetSharedFilter)
		apiGroup.GET("/filters/shared", dashboardHandler.GetSharedFilter)

		viewGroup := apiGroup.Group("/views")
		viewGroup.GET("/:sheet", dashboardHandler.GetView)
		viewGroup.PUT("/:sheet/filters", dashboardHandler.SetViewFilter)

		apiGroup.GET("/cards/vehicles", dashboardHandler.GetVehicleCards)
		apiGroup.GET("/cards/employees", dashboardHandler.GetEmployeeCards)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
