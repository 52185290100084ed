package controllers

import (
	"time"

	"shipments-app/config"
	"shipments-app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
		})
	}

	if input.Email == "" || input.Password == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing required fields",
		})
	}

	var user models.User
	if err := c.DB.Where("email = ? OR username = ?", input.Email, input.Email).First(&user).Error; err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid email or password",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid email or password",
		})
	}

	// One active session per user
	c.DB.Model(&models.UserSession{}).
		Where("user_id = ? AND is_active = ?", user.ID, true).
		Update("is_active", false)

	sessionID := uuid.NewString()
	now := time.Now()
	expiresAt := now.Add(time.Duration(config.JWTExpiration) * time.Second)

	session := models.UserSession{
		UserID:         user.ID,
		SessionID:      sessionID,
		IPAddress:      ctx.IP(),
		UserAgent:      ctx.Get("User-Agent"),
		IsActive:       true,
		LastActivityAt: now,
		ExpiresAt:      expiresAt,
	}
	if err := c.DB.Create(&session).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create session",
		})
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    user.ID,
		"session_id": sessionID,
		"exp":        expiresAt.Unix(),
		"jti":        uuid.NewString(),
	})

	tokenString, err := accessToken.SignedString([]byte(config.JWTSecret))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate token",
		})
	}

	ctx.Cookie(config.GetTokenCookie(tokenString))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data": fiber.Map{
			"access_token": tokenString,
			"user": fiber.Map{
				"id":       user.ID,
				"username": user.Username,
				"name":     user.Name,
				"email":    user.Email,
				"role":     user.Role,
			},
		},
	})
}

func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	sessionID, ok := ctx.Locals("sessionID").(string)
	if !ok || sessionID == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid session",
		})
	}

	var session models.UserSession
	if err := c.DB.Where("session_id = ? AND is_active = ?", sessionID, true).First(&session).Error; err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid session",
		})
	}

	session.IsActive = false
	session.LastActivityAt = time.Now()
	c.DB.Save(&session)

	ctx.Cookie(config.GetTokenCookie(""))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Logout successful",
	})
}

func (c *AuthController) IsLoggedIn(ctx *fiber.Ctx) error {
	userID := int(ctx.Locals("userID").(float64))

	var user models.User
	if err := c.DB.First(&user, userID).Error; err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User is logged in",
		"data": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.Name,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}
