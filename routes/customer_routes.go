package routes

import (
	"shipments-app/config"
	"shipments-app/controllers"
	"shipments-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupCustomerRoutes(app *fiber.App, db *gorm.DB) {
	customerController := &controllers.CustomerController{DB: db}

	api := app.Group(config.MAIN_ROUTES+"/customers", middleware.AuthMiddleware(db))
	api.Get("/", customerController.GetAllCustomers)
	api.Get("/:id", customerController.GetCustomerByID)
	api.Post("/", customerController.CreateCustomer)
	api.Post("/upload", customerController.CreateCustomerFromExcel)
	api.Put("/:id", customerController.UpdateCustomer)
	api.Delete("/:id", customerController.DeleteCustomer)
}
