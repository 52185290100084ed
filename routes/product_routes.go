package routes

import (
	"shipments-app/config"
	"shipments-app/controllers"
	"shipments-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupProductRoutes(app *fiber.App, db *gorm.DB) {
	productController := &controllers.ProductController{DB: db}

	api := app.Group(config.MAIN_ROUTES+"/products", middleware.AuthMiddleware(db))
	api.Get("/", productController.GetAllProducts)
	api.Get("/:id", productController.GetProductByID)
	api.Post("/", productController.CreateProduct)
	api.Post("/upload", productController.CreateProductFromExcel)
	api.Put("/:id", productController.UpdateProduct)
	api.Delete("/:id", productController.DeleteProduct)
}
