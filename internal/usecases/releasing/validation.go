package releasing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vfg2006/leads-dashboard-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// ValidateInput confere os campos obrigatórios, contadores não negativos e bats ≤ vendas.
func ValidateInput(input *domain.ReleaseInput) error {
	if input == nil {
		return &ValidationError{Fields: map[string]string{"body": "obrigatório"}}
	}

	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fields[fe.Field()] = validationMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "obrigatório"
	case "gte":
		return fmt.Sprintf("deve ser maior ou igual a %s", fe.Param())
	case "ltefield":
		return "não pode ser maior que vendas"
	default:
		return fmt.Sprintf("inválido (%s)", fe.Tag())
	}
}
