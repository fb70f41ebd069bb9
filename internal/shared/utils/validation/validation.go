package validation

import (
	"time"

	"tablebook/internal/shared/localtime"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators wires the venue-local date and wall-clock
// formats into gin's binding validator so request DTOs can declare them as
// tags instead of re-validating in every handler.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("localdate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(localtime.DateLayout, fl.Field().String())
		return err == nil
	})

	v.RegisterValidation("localclock", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(localtime.TimeLayout, fl.Field().String())
		return err == nil
	})
}
