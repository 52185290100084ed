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

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

type customerInput struct {
	ID        uint   `json:"id"`
	Code      string `json:"code" validate:"required,alphanum,min=2,max=20"`
	Name      string `json:"name" validate:"required,min=2"`
	Group     string `json:"group"`
	City      string `json:"city"`
	State     string `json:"state"`
	Region    string `json:"region"`
	StateCode string `json:"state_code"`
}

func (c *CustomerController) GetAllCustomers(ctx *fiber.Ctx) error {
	var customers []models.Customer
	if err := c.DB.Order("code ASC").Find(&customers).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Customers found", "data": customers})
}

func (c *CustomerController) GetCustomerByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var result models.Customer
	if err := c.DB.First(&result, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Customer found", "data": result})
}

func (c *CustomerController) CreateCustomer(ctx *fiber.Ctx) error {
	var input customerInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))

	var existing models.Customer
	if err := c.DB.Where("code = ?", code).First(&existing).Error; err == nil {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Customer code " + code + " already exists"})
	}

	customer := models.Customer{
		Code:      code,
		Name:      strings.TrimSpace(input.Name),
		Group:     strings.TrimSpace(input.Group),
		City:      strings.TrimSpace(input.City),
		State:     strings.TrimSpace(input.State),
		Region:    strings.TrimSpace(input.Region),
		StateCode: strings.TrimSpace(input.StateCode),
		CreatedBy: int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Create(&customer).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Customer created successfully", "data": customer})
}

func (c *CustomerController) UpdateCustomer(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input customerInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":       strings.TrimSpace(input.Name),
			"group":      strings.TrimSpace(input.Group),
			"city":       strings.TrimSpace(input.City),
			"state":      strings.TrimSpace(input.State),
			"region":     strings.TrimSpace(input.Region),
			"state_code": strings.TrimSpace(input.StateCode),
			"updated_by": int(ctx.Locals("userID").(float64)),
		}).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Customer updated successfully", "data": input})
}

// DeleteCustomer removes the record for good; customers are hard-deletable.
func (c *CustomerController) DeleteCustomer(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var customer models.Customer
	if err := c.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Unscoped().Delete(&customer).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Customer deleted successfully", "data": customer})
}

// ============================================================================
// Begin upload customer from excel file
// ============================================================================

type CustomerUploadResult struct {
	TotalRows     int      `json:"total_rows"`
	SuccessCount  int      `json:"success_count"`
	SkippedCount  int      `json:"skipped_count"`
	ErrorCount    int      `json:"error_count"`
	SkippedItems  []string `json:"skipped_items"`
	ErrorMessages []string `json:"error_messages"`
}

func (c *CustomerController) CreateCustomerFromExcel(ctx *fiber.Ctx) error {
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

	result := CustomerUploadResult{
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

	// Expected columns: CODE | NAME | GROUP | CITY | STATE | REGION | STATE_CODE
	for i, row := range rows[1:] {
		rowNum := i + 2

		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		if len(row) < 2 {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: Insufficient columns (expected at least 2)", rowNum))
			continue
		}

		col := func(idx int) string {
			if idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		code := strings.ToUpper(col(0))
		name := col(1)

		if code == "" || name == "" {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: CODE and NAME are required", rowNum))
			continue
		}

		if len(code) > 20 {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: Code '%s' exceeds 20 characters", rowNum, code))
			continue
		}

		var existing models.Customer
		if err := tx.Where("code = ?", code).First(&existing).Error; err == nil {
			result.SkippedCount++
			result.SkippedItems = append(result.SkippedItems, code)
			continue
		}

		customer := models.Customer{
			Code:      code,
			Name:      name,
			Group:     col(2),
			City:      col(3),
			State:     col(4),
			Region:    col(5),
			StateCode: col(6),
			CreatedBy: userID,
		}

		if err := tx.Create(&customer).Error; err != nil {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: Failed to create customer - %s", rowNum, err.Error()))
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
// End Upload Customer From Excel
//==============================================================================
