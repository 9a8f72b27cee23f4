package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
	"github.com/shopwise/backend/internal/models"
	"github.com/spf13/viper"
)

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Error   string            `json:"error"`             // Error message
	Details map[string]string `json:"details,omitempty"` // Validation details
	Debug   string            `json:"debug,omitempty"`   // Internal error detail, development only
}

// defaultPhoneRegion applies when app.phone_region is unset.
const defaultPhoneRegion = "NG"

// ValidationHelper provides shared validation functionality
type ValidationHelper struct {
	validator *validator.Validate
	region    string
}

// NewValidationHelper creates a new validation helper. The "phone" tag
// accepts any number libphonenumber considers valid for the default region.
func NewValidationHelper() *ValidationHelper {
	region := viper.GetString("app.phone_region")
	if region == "" {
		region = defaultPhoneRegion
	}
	vh := &ValidationHelper{
		validator: validator.New(),
		region:    region,
	}

	vh.validator.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		_, err := NormalizePhone(fl.Field().String(), vh.region)
		return err == nil
	})

	return vh
}

// ValidateStruct validates a struct and returns validation errors
func (vh *ValidationHelper) ValidateStruct(s any) error {
	return vh.validator.Struct(s)
}

// Validate is ValidateStruct with the result wrapped in models.ErrValidation.
func (vh *ValidationHelper) Validate(s any) error {
	if err := vh.validator.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", models.ErrValidation, err)
	}
	return nil
}

func (vh *ValidationHelper) NormalizePhone(raw string) (string, error) {
	return NormalizePhone(raw, vh.region)
}

// NormalizePhone parses raw and renders it in E.164.
func NormalizePhone(raw, region string) (string, error) {
	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return "", fmt.Errorf("%w: phone number: %v", models.ErrValidation, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w: phone number %q is not valid", models.ErrValidation, raw)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// SendErrorResponse sends a JSON error response
func SendErrorResponse(w http.ResponseWriter, message string, statusCode int, validationErr error) {
	writeErrorResponse(w, statusCode, ErrorResponse{Error: message}, validationErr)
}

// SendDebugErrorResponse is SendErrorResponse with the internal error attached.
func SendDebugErrorResponse(w http.ResponseWriter, message string, statusCode int, debug error) {
	writeErrorResponse(w, statusCode, ErrorResponse{Error: message, Debug: debug.Error()}, nil)
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, errorResp ErrorResponse, validationErr error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	var fieldErrs validator.ValidationErrors
	if errors.As(validationErr, &fieldErrs) {
		errorResp.Details = make(map[string]string)
		for _, err := range fieldErrs {
			errorResp.Details[err.Field()] = fmt.Sprintf("Field Validation Failed on '%s' tag", err.Tag())
		}
	}

	json.NewEncoder(w).Encode(errorResp)
}
