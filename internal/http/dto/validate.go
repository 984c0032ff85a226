package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validator cachea metadata por tipo y es seguro para uso concurrente.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// reportar los campos con su nombre JSON
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate valida req según sus tags. Si falla devuelve *FieldsError.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fe := &FieldsError{}
	for _, e := range verrs {
		fe.Fields = append(fe.Fields, e.Field())
	}
	return fe
}

// FieldsError lista los campos (nombre JSON) que no pasaron la validación.
type FieldsError struct {
	Fields []string
}

func (e *FieldsError) Error() string {
	return "invalid fields: " + strings.Join(e.Fields, ",")
}
