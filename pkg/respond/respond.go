// Package respond implements the uniform response envelope:
//
//	{"success": true,  "data": ...}
//	{"success": false, "error": "..."}
//
// The HTTP status code carries the error category, the envelope the
// human-readable reason.
package respond

import "github.com/gofiber/fiber/v2"

// Envelope is the wire shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK writes a 200 success envelope.
func OK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Data: data})
}

// Created writes a 201 success envelope.
func Created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Data: data})
}

// Error writes a failure envelope with the given status code.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: false, Error: message})
}

// BadRequest writes a 400 failure envelope.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized writes a 401 failure envelope.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden writes a 403 failure envelope.
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound writes a 404 failure envelope.
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Internal writes a 500 failure envelope with a generic message.
// The underlying error is logged by the caller, never serialized here.
func Internal(c *fiber.Ctx) error {
	return Error(c, fiber.StatusInternalServerError, "an unexpected error occurred")
}
