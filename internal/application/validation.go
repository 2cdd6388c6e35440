package application

import (
	"fmt"
	"strings"

	"braindump/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "roomID" -> "room ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"roomID":   "room ID",
		"ideaID":   "idea ID",
		"text":     "text",
		"category": "category",
		"filter":   "filter",
		"format":   "format",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateCategory parses a category, wrapping failures in a ValidationError
func ValidateCategory(value string) (domain.Category, error) {
	c, err := domain.ParseCategory(value)
	if err != nil {
		return "", &ValidationError{Field: "category", Message: err.Error(), Err: err}
	}
	return c, nil
}

// ValidateFilter parses a filter selector, wrapping failures in a ValidationError
func ValidateFilter(value string) (domain.Filter, error) {
	f, err := domain.ParseFilter(value)
	if err != nil {
		return "", &ValidationError{Field: "filter", Message: err.Error(), Err: err}
	}
	return f, nil
}

// ValidateIdeaID checks that an idea id is a positive creation token
func ValidateIdeaID(id int64) error {
	if id <= 0 {
		return &ValidationError{
			Field:   "ideaID",
			Message: fmt.Sprintf("%s must be positive, got: %d", formatFieldName("ideaID"), id),
		}
	}
	return nil
}
