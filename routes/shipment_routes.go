package routes

import (
	"shipments-app/config"
	"shipments-app/controllers"
	"shipments-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupShipmentRoutes(app *fiber.App, db *gorm.DB) {
	shipmentController := controllers.NewShipmentController(db)

	api := app.Group(config.MAIN_ROUTES+"/shipments", middleware.AuthMiddleware(db))

	// draft routes must be registered before /:id
	draft := api.Group("/draft")
	draft.Get("/", shipmentController.GetDraft)
	draft.Put("/header", shipmentController.SetDraftHeader)
	draft.Post("/boxes", shipmentController.AddDraftBox)
	draft.Put("/boxes/:id", shipmentController.EditDraftBox)
	draft.Post("/boxes/:id/copy", shipmentController.CopyDraftBox)
	draft.Delete("/boxes/:id", shipmentController.RemoveDraftBox)
	draft.Post("/boxes/:id/products", shipmentController.AddDraftBoxProduct)
	draft.Delete("/boxes/:id/products/:line_id", shipmentController.RemoveDraftBoxProduct)
	draft.Post("/submit", shipmentController.SubmitDraft)

	api.Get("/", shipmentController.GetAllShipments)
	api.Get("/:id", shipmentController.GetShipmentByID)
	api.Put("/:id", shipmentController.UpdateShipment)
	api.Put("/:id/status", shipmentController.UpdateShipmentStatus)
	api.Delete("/:id", shipmentController.DeleteShipment)
}
