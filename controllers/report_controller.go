package controllers

import (
	"fmt"
	"net/http"
	"time"

	"shipments-app/packing"
	"shipments-app/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ReportController struct {
	DB        *gorm.DB
	Shipments *repositories.ShipmentRepository
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db, Shipments: repositories.NewShipmentRepository(db)}
}

func parseDateQuery(ctx *fiber.Ctx, name string) (*time.Time, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %s", name, raw)
	}
	return &t, nil
}

func (c *ReportController) partyReports(ctx *fiber.Ctx) ([]packing.PartyReport, error) {
	startDate, err := parseDateQuery(ctx, "start_date")
	if err != nil {
		return nil, err
	}
	endDate, err := parseDateQuery(ctx, "end_date")
	if err != nil {
		return nil, err
	}

	headers, err := c.Shipments.List()
	if err != nil {
		return nil, err
	}

	facts := make([]packing.ShipmentFacts, len(headers))
	for i := range headers {
		facts[i] = repositories.Facts(&headers[i])
	}

	return packing.GroupByParty(facts, startDate, endDate), nil
}

// GetCustomerShipments reports shipment volume grouped by party name,
// optionally bounded by start_date and end_date (inclusive).
func (c *ReportController) GetCustomerShipments(ctx *fiber.Ctx) error {
	reports, err := c.partyReports(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Report generated", "data": reports})
}

// ExportCustomerShipments writes the same report as an Excel download.
func (c *ReportController) ExportCustomerShipments(ctx *fiber.Ctx) error {
	reports, err := c.partyReports(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Party Name")
	f.SetCellValue(sheet, "B1", "Shipments")
	f.SetCellValue(sheet, "C1", "Boxes")
	f.SetCellValue(sheet, "D1", "Total Weight")
	f.SetCellValue(sheet, "E1", "Charged Weight")

	for i, row := range reports {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), row.PartyName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), row.ShipmentCount)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), row.BoxCount)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), row.TotalWeight)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", i+2), row.ChargedWeight)
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="customer-shipments.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(http.StatusInternalServerError).SendString("Failed to generate Excel file")
	}

	return nil
}
