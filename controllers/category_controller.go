package controllers

import (
	"errors"
	"strings"

	"shipments-app/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

type categoryInput struct {
	ID   uint   `json:"id"`
	Code string `json:"code" validate:"required,min=2,max=20"`
	Name string `json:"name" validate:"required,min=2"`
}

func (c *CategoryController) GetAllCategories(ctx *fiber.Ctx) error {
	var categories []models.Category
	if err := c.DB.Order("code ASC").Find(&categories).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Categories found", "data": categories})
}

func (c *CategoryController) CreateCategory(ctx *fiber.Ctx) error {
	var input categoryInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	category := models.Category{
		Code:      strings.ToUpper(strings.TrimSpace(input.Code)),
		Name:      strings.TrimSpace(input.Name),
		CreatedBy: int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Create(&category).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Category created successfully", "data": category})
}

func (c *CategoryController) UpdateCategory(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input categoryInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Model(&models.Category{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":       strings.TrimSpace(input.Name),
			"updated_by": int(ctx.Locals("userID").(float64)),
		}).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Category updated successfully", "data": input})
}

func (c *CategoryController) DeleteCategory(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var category models.Category
	if err := c.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var productCount int64
	c.DB.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&productCount)
	if productCount > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot remove category with associated products"})
	}

	category.DeletedBy = int(ctx.Locals("userID").(float64))
	if err := c.DB.Select("deleted_by").Where("id = ?", id).Updates(&category).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&category).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Category deleted successfully", "data": category})
}
