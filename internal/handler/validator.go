package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator plugs go-playground/validator into echo's Validate hook.
type RequestValidator struct {
	v *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}

// message writes the {"message": ...} body used by every endpoint.
func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"message": msg})
}

// bindAndValidate decodes the body into req and validates it.  On failure it
// has already written a 400 response carrying invalidMsg and returns false.
func bindAndValidate(c echo.Context, req interface{}, invalidMsg string) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, message(c, http.StatusBadRequest, invalidMsg)
	}
	if err := c.Validate(req); err != nil {
		return false, message(c, http.StatusBadRequest, invalidMsg)
	}
	return true, nil
}
