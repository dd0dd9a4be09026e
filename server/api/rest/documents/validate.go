package documents

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/ahachul/ahachul-backend/common/gerror"
)

var validate *validator.Validate

var validationMessages = map[string]string{
	"required": "%s is required",
	"min":      "%s must be at least %s",
	"max":      "%s must be at most %s",
	"gte":      "%s must be greater than or equal to %s",
	"lte":      "%s must be less than or equal to %s",
	"oneof":    "%s must be one of [%s]",
	"gt":       "%s must be greater than %s",
}

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
}

// Validate checks the validate struct tags of a request document.
// Returns gerror.ErrValidationFailed describing the first invalid field.
func Validate(doc interface{}) error {
	err := validate.Struct(doc)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Wrap(err, "error validating request")
	}
	first := fieldErrs[0]
	message := fmt.Sprintf("%s is invalid", first.Field())
	if format, ok := validationMessages[first.Tag()]; ok {
		if strings.Count(format, "%s") == 2 {
			message = fmt.Sprintf(format, first.Field(), first.Param())
		} else {
			message = fmt.Sprintf(format, first.Field())
		}
	}
	return gerror.NewErrValidationFailed(message).EDetail("field", first.Field())
}
