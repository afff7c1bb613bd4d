package response

import (
	"github.com/gofiber/fiber/v2"
)

// Message is the body shape for every error and every delete
// acknowledgement: a single human-readable message, no structured codes.
type Message struct {
	Message string `json:"message"`
}

// OK returns the entity as-is with 200
func OK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// Created returns the entity as-is with 201
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// Deleted returns a {message} acknowledgement with 200
func Deleted(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(Message{Message: message})
}

// BadRequest returns a 400 Bad Request response. Validation failures and
// uniqueness conflicts both use this status, mirroring the product contract.
func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Message{Message: message})
}

// Unauthorized returns a 401 Unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Unauthorized access"
	}
	return c.Status(fiber.StatusUnauthorized).JSON(Message{Message: message})
}

// Forbidden returns a 403 Forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Access forbidden"
	}
	return c.Status(fiber.StatusForbidden).JSON(Message{Message: message})
}

// NotFound returns a 404 Not Found response. Also used when the entity
// exists but belongs to another trainer, so ownership is never leaked.
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return c.Status(fiber.StatusNotFound).JSON(Message{Message: message})
}

// TooManyRequests returns a 429 Too Many Requests response
func TooManyRequests(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Too many requests"
	}
	return c.Status(fiber.StatusTooManyRequests).JSON(Message{Message: message})
}

// InternalServerError returns a 500 Internal Server Error response
func InternalServerError(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Internal server error"
	}
	return c.Status(fiber.StatusInternalServerError).JSON(Message{Message: message})
}
