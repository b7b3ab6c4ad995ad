package apitest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// echoValidator lets handlers call c.Validate on bound payloads.
type echoValidator struct {
	v *validator.Validate
}

func newValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, strings.ToLower(fe.Field())+" is invalid ("+fe.Tag()+")")
			}
			return echo.NewHTTPError(http.StatusBadRequest, strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// bindValid binds the JSON body into v and validates it.
func bindValid(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid payload: %v", err))
	}
	return c.Validate(v)
}
