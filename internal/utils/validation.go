package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

func init() {
	validate = validator.New()

	validate.RegisterValidation("widget_color", validateWidgetColor)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// IsValidHexColor reports whether s is a #rgb, #rrggbb or #rrggbbaa color.
func IsValidHexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}

func validateWidgetColor(fl validator.FieldLevel) bool {
	color := fl.Field().String()
	if color == "" {
		return true
	}
	return IsValidHexColor(color)
}
