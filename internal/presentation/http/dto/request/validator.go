package request

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/agriconnect/agriconnect-api/internal/domain/enum"
)

// RegisterCustomValidators installs domain validations on gin's binding
// engine. Call once at startup.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	// orderstatus accepts only the canonical lifecycle status names
	return v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
		_, err := enum.ParseOrderStatus(fl.Field().String())
		return err == nil
	})
}
