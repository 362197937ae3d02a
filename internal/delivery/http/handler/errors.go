package handler

import (
	"errors"

	"mentorlink/internal/delivery/http/middleware"
	"mentorlink/internal/domain"
	"mentorlink/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// mapDomainError translates the domain taxonomy into HTTP errors.
func mapDomainError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, domain.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, domain.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, domain.ErrInvalidOperation):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid operation", nil, err)
	case errors.Is(err, domain.ErrConstraintViolation):
		return middleware.NewAppError(fiber.StatusConflict, "Conflict", nil, err)
	case errors.Is(err, domain.ErrUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

// badRequest wraps a bind or validation failure. Validation failures carry
// the offending fields in the response data.
func badRequest(err error) error {
	if fields := middleware.FieldErrors(err); fields != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", fields, err)
	}
	return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
}
