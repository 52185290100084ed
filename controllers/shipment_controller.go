package controllers

import (
	"errors"
	"strconv"
	"strings"

	"shipments-app/models"
	"shipments-app/packing"
	"shipments-app/repositories"
	"shipments-app/types"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ShipmentController struct {
	DB        *gorm.DB
	Drafts    *packing.Registry
	Shipments *repositories.ShipmentRepository
	Catalog   *repositories.CatalogRepository
}

func NewShipmentController(db *gorm.DB) *ShipmentController {
	catalog := repositories.NewCatalogRepository(db)
	store := repositories.NewDraftRepository(db)
	return &ShipmentController{
		DB:        db,
		Drafts:    packing.NewRegistry(store, catalog, catalog),
		Shipments: repositories.NewShipmentRepository(db),
		Catalog:   catalog,
	}
}

// draftOf returns the live draft of the authenticated operator. One
// operator, one draft.
func (c *ShipmentController) draftOf(ctx *fiber.Ctx) *packing.Draft {
	userID := int(ctx.Locals("userID").(float64))
	return c.Drafts.Draft("shipment-draft:" + strconv.Itoa(userID))
}

func parseBoxID(ctx *fiber.Ctx, name string) (types.SnowflakeID, error) {
	raw, err := strconv.ParseInt(ctx.Params(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return types.SnowflakeID(raw), nil
}

// packingError maps core errors onto status codes.
func packingError(ctx *fiber.Ctx, err error) error {
	var ve *packing.ValidationError
	if errors.As(err, &ve) {
		status := fiber.StatusBadRequest
		if ve.Kind == packing.KindDuplicateShortBox || ve.Kind == packing.KindDuplicateInvoice {
			status = fiber.StatusConflict
		}
		return ctx.Status(status).JSON(fiber.Map{"error": ve.Message, "kind": ve.Kind})
	}

	switch {
	case errors.Is(err, packing.ErrRemovalInProgress):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, packing.ErrBoxNotFound), errors.Is(err, packing.ErrLineNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Shipment not found"})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// ============================================================================
// Draft endpoints (in-progress shipment of the logged-in operator)
// ============================================================================

func (c *ShipmentController) GetDraft(ctx *fiber.Ctx) error {
	draft := c.draftOf(ctx)
	required, packed, match := draft.QuantityMatch()

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"header": draft.Header(),
			"boxes":  draft.Boxes(),
			"totals": draft.Totals(),
			"quantity_check": fiber.Map{
				"required_qty": required,
				"total_pieces": packed,
				"match":        match,
			},
		},
	})
}

func (c *ShipmentController) SetDraftHeader(ctx *fiber.Ctx) error {
	var header packing.Header
	if err := ctx.BodyParser(&header); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.draftOf(ctx).SetHeader(header); err != nil {
		return packingError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Draft header saved"})
}

func (c *ShipmentController) AddDraftBox(ctx *fiber.Ctx) error {
	var spec packing.BoxSpec
	if err := ctx.BodyParser(&spec); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	draft := c.draftOf(ctx)
	box, err := draft.AddBox(spec)
	if err != nil {
		return packingError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Box added successfully",
		"data":    fiber.Map{"box": box, "totals": draft.Totals()},
	})
}

func (c *ShipmentController) EditDraftBox(ctx *fiber.Ctx) error {
	id, err := parseBoxID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid box ID"})
	}

	var spec packing.BoxSpec
	if err := ctx.BodyParser(&spec); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	draft := c.draftOf(ctx)
	box, err := draft.EditBox(id, spec)
	if err != nil {
		return packingError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Box updated successfully",
		"data":    fiber.Map{"box": box, "totals": draft.Totals()},
	})
}

func (c *ShipmentController) CopyDraftBox(ctx *fiber.Ctx) error {
	id, err := parseBoxID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid box ID"})
	}

	draft := c.draftOf(ctx)
	box, err := draft.CopyBox(id)
	if err != nil {
		return packingError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Box copied successfully",
		"data":    fiber.Map{"box": box, "totals": draft.Totals()},
	})
}

func (c *ShipmentController) RemoveDraftBox(ctx *fiber.Ctx) error {
	id, err := parseBoxID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid box ID"})
	}

	draft := c.draftOf(ctx)
	if err := draft.RemoveBox(id); err != nil {
		return packingError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Box removed successfully",
		"data":    fiber.Map{"boxes": draft.Boxes(), "totals": draft.Totals()},
	})
}

func (c *ShipmentController) AddDraftBoxProduct(ctx *fiber.Ctx) error {
	id, err := parseBoxID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid box ID"})
	}

	var spec packing.LineSpec
	if err := ctx.BodyParser(&spec); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	draft := c.draftOf(ctx)
	line, err := draft.AddProduct(id, spec)
	if err != nil {
		return packingError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product added successfully",
		"data":    fiber.Map{"product": line, "totals": draft.Totals()},
	})
}

func (c *ShipmentController) RemoveDraftBoxProduct(ctx *fiber.Ctx) error {
	id, err := parseBoxID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid box ID"})
	}
	lineID, err := parseBoxID(ctx, "line_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product line ID"})
	}

	draft := c.draftOf(ctx)
	if err := draft.RemoveProduct(id, lineID); err != nil {
		return packingError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Product removed successfully",
		"data":    fiber.Map{"totals": draft.Totals()},
	})
}

func (c *ShipmentController) SubmitDraft(ctx *fiber.Ctx) error {
	userID := int(ctx.Locals("userID").(float64))
	draft := c.draftOf(ctx)

	var created *models.ShipmentHeader
	_, err := draft.Submit(func(doc *packing.Shipment) error {
		header, err := c.Shipments.Create(doc, userID)
		if err != nil {
			return err
		}
		created = header
		return nil
	})
	if err != nil {
		return packingError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Shipment created successfully",
		"data":    created,
	})
}

// ============================================================================
// Persisted shipment endpoints
// ============================================================================

type shipmentSummary struct {
	models.ShipmentHeader
	Totals packing.Totals `json:"totals"`
}

func summarize(header models.ShipmentHeader) shipmentSummary {
	return shipmentSummary{
		ShipmentHeader: header,
		Totals:         packing.Summarize(repositories.PackingBoxes(&header)),
	}
}

func (c *ShipmentController) GetAllShipments(ctx *fiber.Ctx) error {
	headers, err := c.Shipments.List()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	summaries := make([]shipmentSummary, len(headers))
	for i, header := range headers {
		summaries[i] = summarize(header)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Shipments found", "data": summaries})
}

func (c *ShipmentController) GetShipmentByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	header, err := c.Shipments.GetByID(uint(id))
	if err != nil {
		return packingError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Shipment found", "data": summarize(*header)})
}

type shipmentUpdateInput struct {
	InvoiceNo    string            `json:"invoice_no" validate:"required,min=2"`
	CustomerCode string            `json:"customer_code" validate:"required"`
	Date         string            `json:"date" validate:"required"`
	RequiredQty  int               `json:"required_qty" validate:"required,min=1"`
	StartTime    string            `json:"start_time"`
	EndTime      string            `json:"end_time"`
	Status       string            `json:"status"`
	Notes        string            `json:"notes"`
	Boxes        []packing.BoxSpec `json:"boxes"`
}

// UpdateShipment replaces the stored document. Boxes are revalidated and
// all derived figures recomputed server side; client-sent figures are
// ignored.
func (c *ShipmentController) UpdateShipment(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input shipmentUpdateInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	current, err := c.Shipments.GetByID(uint(id))
	if err != nil {
		return packingError(ctx, err)
	}

	customer, err := c.Catalog.ResolveCustomer(input.CustomerCode)
	if err != nil || customer == nil {
		return packingError(ctx, packing.NewValidationError(packing.KindUnknownCustomer,
			"customer %s not found", strings.ToUpper(strings.TrimSpace(input.CustomerCode))))
	}

	status := input.Status
	if status == "" {
		status = current.Status
	}
	if !packing.ValidStatus(status) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status " + status})
	}
	if !packing.CanAdvance(current.Status, status) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Status cannot move back from " + current.Status + " to " + status})
	}

	boxes, err := packing.NewValidator(c.Catalog).ValidateBoxes(input.Boxes)
	if err != nil {
		return packingError(ctx, err)
	}
	if len(boxes) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Shipment must contain at least one box"})
	}

	doc := &packing.Shipment{
		InvoiceNo:   strings.ToUpper(strings.TrimSpace(input.InvoiceNo)),
		CustomerID:  customer.ID,
		PartyName:   customer.Name,
		Date:        input.Date,
		RequiredQty: input.RequiredQty,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Status:      status,
		Notes:       input.Notes,
		Boxes:       boxes,
	}

	header, err := c.Shipments.Update(uint(id), doc, int(ctx.Locals("userID").(float64)))
	if err != nil {
		return packingError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Shipment updated successfully", "data": summarize(*header)})
}

func (c *ShipmentController) UpdateShipmentStatus(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if !packing.ValidStatus(input.Status) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status " + input.Status})
	}

	header, err := c.Shipments.GetByID(uint(id))
	if err != nil {
		return packingError(ctx, err)
	}

	if !packing.CanAdvance(header.Status, input.Status) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Status cannot move back from " + header.Status + " to " + input.Status})
	}

	if err := c.Shipments.UpdateStatus(uint(id), input.Status, int(ctx.Locals("userID").(float64))); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Shipment status updated successfully"})
}

func (c *ShipmentController) DeleteShipment(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	if err := c.Shipments.Delete(uint(id), int(ctx.Locals("userID").(float64))); err != nil {
		return packingError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Shipment deleted successfully"})
}
