package middleware

import (
	"errors"
	"net/http"

	"github.com/bilgisen/ytfeed/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// QueryParamsKey is the Locals key holding the validated query struct.
const QueryParamsKey = "queryParams"

var validate = validator.New()

// ValidateQueryParams parses the query string into a fresh value from
// newParams, validates it, and stores it under QueryParamsKey.
func ValidateQueryParams[T any](newParams func() *T) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := newParams()
		if err := c.QueryParser(params); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid query parameters",
				"msg":   err.Error(),
			})
		}

		if err := validate.Struct(params); err != nil {
			fields := make(map[string]string)
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					fields[fe.Field()] = fe.Tag()
				}
			}

			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "Invalid query parameters",
				"fields": fields,
			})
		}

		c.Locals(QueryParamsKey, params)
		return c.Next()
	}
}

// ErrorHandler renders every unhandled error as JSON
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	logger.Get().Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", code).
		Msg("HTTP error")

	return c.Status(code).JSON(fiber.Map{
		"error": http.StatusText(code),
	})
}
