package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"schedly/config"
	"schedly/handlers"
)

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, sched *handlers.SchedulingHandler, resources *handlers.ResourceHandler) {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	origins := config.AppConfig.AllowedOrigins
	if origins == "" || origins == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/schedule")
	{
		api.POST("/session", sched.OpenSession)

		session := api.Group("/session/:sessionID")
		{
			session.GET("", sched.GetSession)
			session.DELETE("", sched.CloseSession)
			session.PUT("/range", sched.ChangeRange)

			session.POST("/appointments", sched.CreateAppointment)
			session.PUT("/appointments/:id", sched.UpdateAppointment)
			session.DELETE("/appointments/:id", sched.DeleteAppointment)
			session.POST("/appointments/:id/move", sched.MoveAppointment)
			session.POST("/appointments/:id/resize", sched.ResizeAppointment)
			session.GET("/appointments/:id/explanation", sched.Explain)

			session.POST("/optimize", sched.Optimize)
			session.POST("/save", sched.Save)
			session.POST("/reset", sched.Reset)
		}

		res := api.Group("/resources")
		{
			res.GET("/clients", resources.ListClients)
			res.GET("/services", resources.ListServices)
			res.GET("/workers", resources.ListWorkers)
			res.GET("/locations", resources.ListLocations)
		}
	}
}
