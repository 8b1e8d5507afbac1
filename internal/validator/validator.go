// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"travelbudget/internal/models"
	"travelbudget/internal/money"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
		v.RegisterCustomTypeFunc(amountValue, money.Amount{})
		_ = v.RegisterValidation("category", validateCategory)
		_ = v.RegisterValidation("calendar_date", validateCalendarDate)
		_ = v.RegisterValidation("positive_amount", validatePositiveAmount)
	}
}

// jsonFieldName reports fields by their JSON name so that validation errors
// name what the client actually sent.
func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// amountValue lets the standard numeric tags (required, gt, lte) see an
// Amount as its float value.
func amountValue(field reflect.Value) interface{} {
	if a, ok := field.Interface().(money.Amount); ok {
		return a.Float64()
	}
	return nil
}

func validateCategory(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := models.ParseDate(fl.Field().String())
	return err == nil
}

func validatePositiveAmount(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return f > 0 && f <= money.MaxAmount.InexactFloat64()
	}
	return false
}
