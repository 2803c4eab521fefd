// Package validator valida DTOs de entrada a partir de sus tags `validate`
// y traduce los errores a mensajes por campo.
package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Validator envoltorio de go-playground/validator que usa el nombre JSON de cada campo.
type Validator struct {
	validate *validator.Validate
}

// New construye el validador.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct valida s y devuelve un mapa campo -> mensaje. nil si es válido.
func (v *Validator) Struct(s any) map[string]string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	name := prettify(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " es requerido"
	case "email":
		return name + " debe ser un email válido"
	case "min":
		if fe.Kind() == reflect.String {
			return name + " debe tener al menos " + fe.Param() + " caracteres"
		}
		return name + " debe ser mayor o igual a " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return name + " debe tener como máximo " + fe.Param() + " caracteres"
		}
		return name + " debe ser menor o igual a " + fe.Param()
	case "gte":
		return name + " debe ser mayor o igual a " + fe.Param()
	case "uuid":
		return name + " debe ser un UUID"
	default:
		return name + " es inválido"
	}
}

// prettify convierte "first_name" en "First Name".
func prettify(field string) string {
	return cases.Title(language.Und, cases.NoLower).String(strings.ReplaceAll(field, "_", " "))
}
