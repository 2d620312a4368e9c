package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("⚠️ user index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("⚠️ order index warning: %v", err)
	}
	if err := database.EnsurePackageIndexes(db); err != nil {
		log.Printf("⚠️ package index warning: %v", err)
	}
	if err := database.EnsureAddressIndexes(db); err != nil {
		log.Printf("⚠️ address index warning: %v", err)
	}
	if err := database.EnsureCounterIndexes(db); err != nil {
		log.Printf("⚠️ counter index warning: %v", err)
	}

	r := gin.Default()

	auth := r.Group("/auth")
	auth.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		auth.POST("/sync", handlers.SyncUser(db))
	}

	r.GET("/me", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.GetMe(db))
	r.PUT("/me", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.UpdateProfile(db))

	user := r.Group("/user")
	user.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		user.GET("/addresses", handlers.GetUserAddresses(db))
		user.POST("/addresses", handlers.CreateUserAddress(db))
		user.PUT("/addresses/:id", handlers.UpdateUserAddress(db))
		user.DELETE("/addresses/:id", handlers.DeleteUserAddress(db))

		user.GET("/packages", handlers.GetUserPackages(db))
		user.POST("/packages", handlers.CreatePackage(db))
		user.PUT("/packages/:id", handlers.UpdateUserPackage(db))
		user.DELETE("/packages/:id", handlers.RemoveUserPackage(db))

		user.GET("/orders", handlers.GetUserOrders(db))
		user.GET("/orders/:id", handlers.GetOrderByID(db))
	}

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/packages", handlers.GetAllPackages(db))
		admin.PUT("/packages/:id", handlers.UpdatePackage(db))
		admin.DELETE("/packages/:id", handlers.RemovePackage(db))

		admin.PUT("/orders/:id", handlers.UpdateOrder(db))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
