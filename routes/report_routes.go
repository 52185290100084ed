package routes

import (
	"shipments-app/config"
	"shipments-app/controllers"
	"shipments-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupReportRoutes(app *fiber.App, db *gorm.DB) {
	reportController := controllers.NewReportController(db)

	api := app.Group(config.MAIN_ROUTES+"/reports", middleware.AuthMiddleware(db))
	api.Get("/customer-shipments", reportController.GetCustomerShipments)
	api.Get("/customer-shipments/export", reportController.ExportCustomerShipments)
}
