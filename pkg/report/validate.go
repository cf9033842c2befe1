package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const numericValueTag = "numeric_value"

// ErrInvalidReport is wrapped by every decoding and validation failure.
var ErrInvalidReport = errors.New("invalid report")

var validate = newValidator()

// ValidationError names the first field that failed validation and the rule it broke.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s field: rule %q not satisfied", e.Field, e.Rule)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidReport
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON names so errors match the payload the client sent.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	if err := v.RegisterValidation(numericValueTag, func(fl validator.FieldLevel) bool {
		return isNumeric(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// Decode reads one JSON report from r and rejects anything after it. It does not validate the result.
func Decode(r io.Reader) (*Report, error) {
	var rep Report

	dec := json.NewDecoder(r)
	if err := dec.Decode(&rep); err != nil {
		return nil, fmt.Errorf("%w: decode body: %w", ErrInvalidReport, err)
	}

	// the body holds exactly one JSON value.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after report", ErrInvalidReport)
	}

	return &rep, nil
}

// Validate checks the submitter fields and the presence of every section.
// Fields are checked in declaration order and only the first failure is returned.
func (r *Report) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &ValidationError{
			Field: fieldErrs[0].Field(),
			Rule:  fieldErrs[0].Tag(),
		}
	}

	return fmt.Errorf("%w: %w", ErrInvalidReport, err)
}
