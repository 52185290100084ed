package routes

import (
	"shipments-app/config"
	"shipments-app/controllers"
	"shipments-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupCategoryRoutes(app *fiber.App, db *gorm.DB) {
	categoryController := &controllers.CategoryController{DB: db}

	api := app.Group(config.MAIN_ROUTES+"/categories", middleware.AuthMiddleware(db))
	api.Get("/", categoryController.GetAllCategories)
	api.Post("/", categoryController.CreateCategory)
	api.Put("/:id", categoryController.UpdateCategory)
	api.Delete("/:id", categoryController.DeleteCategory)
}
