package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/portfolio-api/internal/dto"
)

// SendJSON writes data as the response body with the given status.
func SendJSON(c *fiber.Ctx, status int, data interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(data)
}

// SendMessage sends {"message": ...}.
func SendMessage(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "success"
	}
	return SendJSON(c, status, dto.MessageResponse{Message: message})
}

// SendError sends {"error": ...} with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: message})
}
