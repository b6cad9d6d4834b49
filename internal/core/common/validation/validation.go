package validation

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	errors "github.com/frahmantamala/bizmanager/internal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name so clients can match them to the body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Struct runs the `validate` tags of dto and collects every failure.
func Struct(dto interface{}) *errors.AppError {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.NewInternalError("validation could not run", err)
	}

	out := make([]errors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, errors.ValidationError{
			Field:   fe.Field(),
			Message: message(fe),
			Code:    strings.ToUpper(fe.Tag()),
		})
	}
	return errors.NewValidationErrors(out)
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Ptr {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Ptr {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "numeric":
		return fmt.Sprintf("%s must be a number", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// Decode reads a JSON body into dto. Type mismatches are reported against the
// offending field like any other validation failure.
func Decode(body io.Reader, dto interface{}) *errors.AppError {
	dec := json.NewDecoder(body)
	if err := dec.Decode(dto); err != nil {
		return DecodeError(err)
	}
	return nil
}

func DecodeError(err error) *errors.AppError {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var sizeErr *http.MaxBytesError
	switch {
	case stderrors.As(err, &sizeErr):
		return errors.NewPayloadTooLargeError(sizeErr.Limit)
	case stderrors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return errors.NewValidationError("request body must be a JSON object", errors.ErrCodeInvalidBody)
		}
		return errors.NewValidationFieldError(field,
			fmt.Sprintf("%s must be of type %s", field, strings.TrimPrefix(typeErr.Type.String(), "*")), errors.ErrCodeInvalidType)
	case stderrors.As(err, &syntaxErr), stderrors.Is(err, io.ErrUnexpectedEOF):
		return errors.NewValidationError("request body is not valid JSON", errors.ErrCodeInvalidBody)
	case stderrors.Is(err, io.EOF):
		return errors.NewValidationError("request body is required", errors.ErrCodeInvalidBody)
	default:
		// time.Time and friends report their own parse errors.
		return errors.NewValidationError(fmt.Sprintf("invalid request body: %v", err), errors.ErrCodeInvalidBody)
	}
}
