package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/FACorreiaa/go-cityinfo-api/internal/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so messages line up with the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldMessages overrides the generic message for a field and tag.
var fieldMessages = map[string]string{
	"name.required":       "You should provide a name value.",
	"description.nefield": "The provided description should be different from the name.",
}

// Validate checks s against its validate tags. It returns nil when s is
// valid and a *types.ValidationError otherwise.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validation could not run: %w", err)
	}

	verr := types.NewValidationError()
	for _, fe := range validationErrors {
		verr.Add(fe.Field(), fieldErrorMessage(fe))
	}
	return verr
}

func fieldErrorMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "max":
		return fmt.Sprintf("The field %s must be a string with a maximum length of %s.", fe.Field(), fe.Param())
	case "nefield":
		return fmt.Sprintf("The field %s must be different from %s.", fe.Field(), strings.ToLower(fe.Param()))
	default:
		return fmt.Sprintf("The field %s is invalid (%s).", fe.Field(), fe.Tag())
	}
}
