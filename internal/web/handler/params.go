package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/brokerdesk/brokerdesk/internal/auth"
	"github.com/brokerdesk/brokerdesk/internal/web/middleware/tenant"
)

// ErrNilDependency is returned by Init when a dependency is missing.
var ErrNilDependency = errors.New(ErrNilACDFatalLogMsg)

// ParamID parses a positive numeric route parameter.
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", auth.ErrInvalidInput, name)
	}

	return uint(id), nil
}

// Bind parses the JSON body into out and validates its struct tags.
func Bind(c *fiber.Ctx, v *validator.Validate, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: malformed body", auth.ErrInvalidInput)
	}

	if err := v.Struct(out); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			ve := validationErrors[0]

			return fmt.Errorf("%w: field '%s' failed validation tag '%s'", auth.ErrInvalidInput, ve.Field(), ve.Tag())
		}

		return fmt.Errorf("%w: %s", auth.ErrInvalidInput, err.Error())
	}

	return nil
}

// Reject reports a mutation refused by the handler and writes its error response.
func Reject(c *fiber.Ctx, authService *auth.Service, op string, err error) error {
	return auth.SendError(c, authService.Reject(c.UserContext(), tenant.ID(c), op, err))
}
