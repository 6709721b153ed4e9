package utils

import (
	"reflect"
	"strings"

	"waterhealth-service/internal/app/models"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	validate.RegisterValidation("severity_matches_quality", validateSeverityMatchesQuality)
	validate.RegisterValidation("waterbody_id_not_blank", validateNotBlank)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateSeverityMatchesQuality(fl validator.FieldLevel) bool {
	parent := fl.Parent()
	if parent.Kind() == reflect.Ptr {
		parent = parent.Elem()
	}
	event, ok := parent.Interface().(models.ContaminationEvent)
	if !ok {
		return false
	}
	expected, known := models.SeverityForQuality(event.Quality)
	return known && expected == event.Severity
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
