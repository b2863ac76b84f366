package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"travelapi/internal/http/middleware"
	"travelapi/internal/service"
)

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return middleware.WriteError(c, status, code, message)
}

// respondError maps service error classes to responses. Anything unrecognised is
// returned unchanged so the global ErrorHandler logs it and answers 500.
func respondError(c *fiber.Ctx, err error) error {
	var (
		br *badRequest
		ve *service.ValidationError
	)
	switch {
	case errors.As(err, &br):
		return writeError(c, fiber.StatusBadRequest, br.code, br.message)
	case errors.As(err, &ve):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", ve.Message)
	case errors.Is(err, service.ErrReaderNil):
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	case errors.Is(err, service.ErrValidation):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", publicMessage(err, service.ErrValidation, "invalid request"))
	case errors.Is(err, service.ErrUnauthorized):
		return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", publicMessage(err, service.ErrUnauthorized, "unauthorized"))
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", publicMessage(err, service.ErrNotFound, "resource not found"))
	case errors.Is(err, service.ErrConflict):
		return writeError(c, fiber.StatusConflict, "CONFLICT", publicMessage(err, service.ErrConflict, "resource already exists"))
	default:
		return err
	}
}

// publicMessage returns the context a service put in front of sentinel ("email already
// registered: conflict" -> "email already registered"). Errors shaped any other way may
// carry internal detail, so they fall back to a fixed message.
func publicMessage(err, sentinel error, fallback string) string {
	msg := err.Error()
	switch {
	case strings.HasSuffix(msg, ": "+sentinel.Error()):
		return strings.TrimSuffix(msg, ": "+sentinel.Error())
	case strings.HasSuffix(msg, " "+sentinel.Error()) && !strings.Contains(msg, ":"):
		return msg
	default:
		return fallback
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses
// and logs unexpected failures with the request ID.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if !errors.As(err, &fe) {
			log.Error("request_failed",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.String("method", utils.CopyString(c.Method())),
				zap.String("path", utils.CopyString(c.Path())),
				zap.Error(err),
			)
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		switch fe.Code {
		case fiber.StatusBadRequest:
			return writeError(c, fe.Code, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, fe.Code, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, fe.Code, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, fe.Code, "PAYLOAD_TOO_LARGE", "request body too large")
		case fiber.StatusTooManyRequests:
			return writeError(c, fe.Code, "RATE_LIMITED", "too many requests")
		case fiber.StatusServiceUnavailable:
			return writeError(c, fe.Code, "SERVICE_UNAVAILABLE", "service unavailable")
		default:
			if fe.Code >= fiber.StatusInternalServerError {
				log.Error("request_failed",
					zap.String("request_id", middleware.GetRequestID(c)),
					zap.Int("status", fe.Code),
					zap.Error(err),
				)
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
			return writeError(c, fe.Code, "ERROR", fe.Message)
		}
	}
}
