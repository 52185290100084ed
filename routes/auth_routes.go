package routes

import (
	"shipments-app/config"
	"shipments-app/controllers"
	"shipments-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := &controllers.AuthController{DB: db}

	api := app.Group(config.MAIN_ROUTES + "/auth")
	api.Post("/login", authController.Login)

	protected := app.Group(config.MAIN_ROUTES+"/auth", middleware.AuthMiddleware(db))
	protected.Get("/logout", authController.Logout)
	protected.Get("/me", authController.IsLoggedIn)
}
