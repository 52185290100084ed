package main

import (
	"fmt"
	"log"

	"shipments-app/config"
	"shipments-app/database"
	"shipments-app/idgen"
	"shipments-app/routes"

	"github.com/gofiber/fiber/v2"
)

func main() {
	config.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	app := fiber.New()
	config.SetupCORS(app)

	routes.SetupAuthRoutes(app, db)
	routes.SetupProductRoutes(app, db)
	routes.SetupCategoryRoutes(app, db)
	routes.SetupCustomerRoutes(app, db)
	routes.SetupShipmentRoutes(app, db)
	routes.SetupReportRoutes(app, db)

	port := config.APP_PORT
	fmt.Println("🚀 Server running on port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
