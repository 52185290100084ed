package controllers

import (
	"errors"
	"fmt"
	"strings"

	"shipments-app/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

type productInput struct {
	ID         uint   `json:"id"`
	SKU        string `json:"sku" validate:"required,min=2,max=20"`
	Name       string `json:"name" validate:"required,min=2"`
	CategoryID uint   `json:"category_id" validate:"required"`
	Origin     string `json:"origin"`
}

func (c *ProductController) GetAllProducts(ctx *fiber.Ctx) error {
	var products []models.Product
	query := c.DB.Preload("Category")

	// Inactive products stay out of the catalog unless asked for
	if ctx.Query("include_inactive") != "true" {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Order("sku ASC").Find(&products).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Products found", "data": products})
}

func (c *ProductController) GetProductByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var result models.Product
	if err := c.DB.Preload("Category").First(&result, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Product found", "data": result})
}

func (c *ProductController) CreateProduct(ctx *fiber.Ctx) error {
	var input productInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var category models.Category
	if err := c.DB.First(&category, input.CategoryID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
	}

	sku := strings.ToUpper(strings.TrimSpace(input.SKU))

	var existing models.Product
	if err := c.DB.Where("sku = ?", sku).First(&existing).Error; err == nil {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "SKU " + sku + " already exists"})
	}

	product := models.Product{
		SKU:        sku,
		Name:       strings.TrimSpace(input.Name),
		CategoryID: category.ID,
		Origin:     strings.TrimSpace(input.Origin),
		IsActive:   true,
		CreatedBy:  int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Create(&product).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Product created successfully", "data": product})
}

func (c *ProductController) UpdateProduct(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input productInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var category models.Category
	if err := c.DB.First(&category, input.CategoryID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
	}

	if err := c.DB.Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":        strings.TrimSpace(input.Name),
			"category_id": category.ID,
			"origin":      strings.TrimSpace(input.Origin),
			"updated_by":  int(ctx.Locals("userID").(float64)),
		}).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Product updated successfully", "data": input})
}

// DeleteProduct deactivates a product; catalog entries are never
// physically removed here so shipment lines keep resolving history.
func (c *ProductController) DeleteProduct(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var product models.Product
	if err := c.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Model(&product).Updates(map[string]interface{}{
		"is_active":  false,
		"updated_by": int(ctx.Locals("userID").(float64)),
	}).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Product deactivated successfully", "data": product})
}

// ============================================================================
// Begin upload product from excel file
// ============================================================================

type ProductUploadResult struct {
	TotalRows     int      `json:"total_rows"`
	SuccessCount  int      `json:"success_count"`
	SkippedCount  int      `json:"skipped_count"`
	ErrorCount    int      `json:"error_count"`
	SkippedItems  []string `json:"skipped_items"`
	ErrorMessages []string `json:"error_messages"`
}

func (c *ProductController) CreateProductFromExcel(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "File is required",
		})
	}

	if !strings.HasSuffix(strings.ToLower(file.Filename), ".xlsx") &&
		!strings.HasSuffix(strings.ToLower(file.Filename), ".xls") {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Only Excel files (.xlsx, .xls) are allowed",
		})
	}

	fileContent, err := file.Open()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to open file",
		})
	}
	defer fileContent.Close()

	f, err := excelize.OpenReader(fileContent)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to read Excel file",
		})
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "No sheets found in Excel file",
		})
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to read rows",
		})
	}

	if len(rows) < 2 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Excel file must contain header and at least one data row",
		})
	}

	result := ProductUploadResult{
		TotalRows:     len(rows) - 1,
		SkippedItems:  []string{},
		ErrorMessages: []string{},
	}

	userID := int(ctx.Locals("userID").(float64))

	tx := c.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Expected columns: SKU | NAME | CATEGORY | ORIGIN
	for i, row := range rows[1:] {
		rowNum := i + 2

		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		if len(row) < 3 {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: Insufficient columns (expected at least 3)", rowNum))
			continue
		}

		sku := strings.ToUpper(strings.TrimSpace(row[0]))
		name := strings.TrimSpace(row[1])
		categoryCode := strings.ToUpper(strings.TrimSpace(row[2]))
		origin := ""
		if len(row) > 3 {
			origin = strings.TrimSpace(row[3])
		}

		if sku == "" || name == "" {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: SKU and NAME are required", rowNum))
			continue
		}

		if len(sku) > 20 {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: SKU '%s' exceeds 20 characters", rowNum, sku))
			continue
		}

		var existing models.Product
		if err := tx.Where("sku = ?", sku).First(&existing).Error; err == nil {
			result.SkippedCount++
			result.SkippedItems = append(result.SkippedItems, sku)
			continue
		}

		var category models.Category
		if err := tx.Where("code = ?", categoryCode).First(&category).Error; err != nil {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: Invalid category code '%s'", rowNum, categoryCode))
			continue
		}

		product := models.Product{
			SKU:        sku,
			Name:       name,
			CategoryID: category.ID,
			Origin:     origin,
			IsActive:   true,
			CreatedBy:  userID,
		}

		if err := tx.Create(&product).Error; err != nil {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: Failed to create product - %s", rowNum, err.Error()))
			continue
		}

		result.SuccessCount++
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to commit transaction",
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Upload completed: %d success, %d skipped, %d errors",
			result.SuccessCount, result.SkippedCount, result.ErrorCount),
		"data": result,
	})
}

//==============================================================================
// End Upload Product From Excel
//==============================================================================
