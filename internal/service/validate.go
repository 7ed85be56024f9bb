package service

import (
	"errors"
	"strings"

	"productapi/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

// violationSeparator joins the collected rule violations into one message.
const violationSeparator = ", "

// violationReasons maps each payload field to its rule description. Every
// rule is evaluated independently so a rejected payload reports all of its
// violations, never just the first.
var violationReasons = map[string]string{
	"Name":        "name is required and must be a non-empty string",
	"Description": "description must be a string",
	"Price":       "price is required and must be a non-negative number",
	"Category":    "category is required and must be a non-empty string",
	"InStock":     "inStock is required and must be a boolean",
}

type payloadValidator struct {
	validate *validator.Validate
}

func newPayloadValidator() *payloadValidator {
	v := validator.New()
	// notblank rejects strings that are empty after trimming.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &payloadValidator{validate: v}
}

// check evaluates every field rule and returns a single validation error
// carrying all violated-rule descriptions, or nil when the payload conforms.
func (pv *payloadValidator) check(payload ProductPayload) error {
	err := pv.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperr.Internal("failed to validate product payload")
	}

	reasons := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		reasons = append(reasons, violationReasons[fieldErr.StructField()])
	}
	return apperr.Validation(strings.Join(reasons, violationSeparator))
}
