package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	registerNoSpacesAtStartOrEnd()
	registerDecimalGreaterThanZero()
}

// ErrorValidateResponse is one field-level validation failure, shaped for
// direct inclusion in an HTTP error body.
type ErrorValidateResponse struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e ErrorValidateResponse) Error() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", e.Field, e.Message))
}

func ValidateStruct(toValidate interface{}) error {
	// register function to get tag name from json tags.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	var errs *multierror.Error
	if err := validate.Struct(toValidate); err != nil {
		// this check is only needed when your code could produce
		// an invalid value for validation such as interface with nil
		// value most including myself do not usually have code like this.
		if _, ok := err.(*validator.InvalidValidationError); ok {
			errs = multierror.Append(errs, ErrorValidateResponse{
				Message: err.Error(),
			})
			return errs.ErrorOrNil()
		}

		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) {
			for _, valErr := range valErrs {
				errs = multierror.Append(errs, ErrorValidateResponse{
					Field:   valErr.Field(),
					Message: strings.TrimSpace(fmt.Sprintf("%s %s", valErr.Tag(), valErr.Param())),
				})
			}
		}
	}

	return errs.ErrorOrNil()
}

// CollectFieldErrors unwraps a multierror produced by ValidateStruct back
// into its field-level entries for response bodies.
func CollectFieldErrors(err error) []ErrorValidateResponse {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return nil
	}

	fieldErrs := make([]ErrorValidateResponse, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		var fieldErr ErrorValidateResponse
		if errors.As(e, &fieldErr) {
			fieldErrs = append(fieldErrs, fieldErr)
		}
	}
	return fieldErrs
}

func registerDecimalGreaterThanZero() {
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if value, ok := field.Interface().(decimal.Decimal); ok {
			return value.String()
		}
		return nil
	}, decimal.Decimal{})

	validate.RegisterValidation("decimalGreaterThanZero", func(fl validator.FieldLevel) bool {
		data, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}

		value, err := decimal.NewFromString(data)
		if err != nil {
			return false
		}

		return value.GreaterThan(decimal.Zero)
	})
}

func registerNoSpacesAtStartOrEnd() {
	validate.RegisterValidation("noStartEndSpaces", func(fl validator.FieldLevel) bool {
		str := fl.Field().String()
		return str == "" || (str[0] != ' ' && str[len(str)-1] != ' ')
	})
}
