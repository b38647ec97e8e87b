package shared

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"workforce/internal/transport/http/api"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Validate runs struct-tag validation on a decoded payload and writes a 400
// with per-field issues on failure. Returns true when the request was
// rejected.
func Validate(w http.ResponseWriter, requestID string, payload any) bool {
	err := validate.Struct(payload)
	if err == nil {
		return false
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		api.Fail(w, http.StatusBadRequest, "validation_error", "payload is not validatable", requestID)
		return true
	}

	var issues []ValidationIssue
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			issues = append(issues, ValidationIssue{
				Field:  strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
				Reason: "failed on '" + fe.Tag() + "' validation",
			})
		}
	}
	api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed",
		map[string]any{"fields": issues}, requestID)
	return true
}
