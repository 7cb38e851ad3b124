package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"decision-framework-be/pkg/catalog"
)

// ErrorHandlerMiddleware maps typed errors to HTTP responses. Provider
// outages never reach here: the matching pipeline degrades instead of
// failing. Catalog problems are configuration errors and surface as 500s.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var inconsistency *catalog.InconsistencyError
		if errors.As(err, &inconsistency) {
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(inconsistency.Error()))
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(validationErr.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error"))
	}
}
