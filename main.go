package main

import (
	"fmt"
	"log"
	"os"

	"courtbook-backend/config"
	"courtbook-backend/models"
	"courtbook-backend/routes"
	"courtbook-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Constant{},
		&models.Booking{},
		&models.Payment{},
		&models.NotificationLog{},
	)
}

func main() {

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	reminders := services.NewReminderService(config.DB)
	reminders.StartScheduler()

	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
