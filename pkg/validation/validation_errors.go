package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	"Name":        "Column name",
	"JobID":       "Job",
	"ResumeURL":   "Resume URL",
	"CoverLetter": "Cover letter",
	"TrelloName":  "Target column",
	"CandidateID": "Candidate",
	"Date":        "Date",
	"Start":       "Start time",
	"End":         "End time",
	"Token":       "Push token",
	"Platform":    "Platform",
	"Title":       "Title",
	"Description": "Description",
	"Location":    "Location",
	"SalaryMin":   "Minimum salary",
	"SalaryMax":   "Maximum salary",
	"ClosingDate": "Closing date",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Malformed JSON and type mismatches land here
		return []string{"Request body is malformed"}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required", "not_blank":
		return fmt.Sprintf("%s: is required", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)

	case "gte":
		return fmt.Sprintf("%s: must be %s or more", label, param)

	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.Join(strings.Fields(param), ", "))

	case "url":
		return fmt.Sprintf("%s: is not a valid URL", label)

	case "clock":
		return fmt.Sprintf("%s: must be a time in HH:MM format", label)

	case "calendar_date":
		return fmt.Sprintf("%s: must be a date in YYYY-MM-DD format", label)

	case "push_token":
		return fmt.Sprintf("%s: is not a valid device token", label)

	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or special symbols", label)

	case "gtfield":
		return fmt.Sprintf("%s: must be greater than %s", label, getFieldLabel(param))

	case "gtefield":
		return fmt.Sprintf("%s: must not be less than %s", label, getFieldLabel(param))

	default:
		return fmt.Sprintf("%s: failed validation (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
