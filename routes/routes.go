package routes

import (
	"courtbook-backend/config"
	"courtbook-backend/controllers"
	"courtbook-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Booking routes
		bookings := api.Group("/bookings")
		{
			bookings.POST("", controllers.CreateBooking)
			bookings.GET("", controllers.GetBookings)
			bookings.GET("/:id", controllers.GetBooking)
			bookings.PUT("/:id", controllers.UpdateBooking)
			bookings.DELETE("/:id", controllers.DeleteBooking)
			bookings.POST("/:id/payment-flow", controllers.StartPaymentFlow)
		}

		// Payment flow routes
		paymentFlows := api.Group("/payment-flows")
		{
			paymentFlows.GET("/:id", controllers.GetPaymentFlow)
			paymentFlows.POST("/:id/advance", controllers.AdvancePaymentFlow)
		}

		// Payment ledger
		api.GET("/payments", controllers.GetPayments)

		// Revenue routes
		api.GET("/revenue", controllers.GetRevenue)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Settings routes
		settings := api.Group("/settings")
		{
			settings.GET("", controllers.GetSettings)
			settings.PUT("/:name", controllers.UpdateSetting)
		}
	}

	return r
}
