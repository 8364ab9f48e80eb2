// utils/validator.go - Input validation
package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

// FieldError is a single validation failure tied to an input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects validation failures for one submission.
type FieldErrors []FieldError

// Add appends a failure for the given field.
func (e *FieldErrors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any rule failed.
func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// ValidatePassword checks password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	return true, ""
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}

// MaxUploadSize is the upload limit for receipts and photos (10MB).
const MaxUploadSize = 10 * 1024 * 1024

var receiptExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".pdf"}
var photoExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// ValidateReceiptUpload checks size and extension for receipt files.
func ValidateReceiptUpload(filename string, size int64) FieldErrors {
	return validateUpload(filename, size, receiptExtensions,
		"Invalid file type. Allowed types: JPG, JPEG, PNG, GIF, WEBP, PDF")
}

// ValidatePhotoUpload checks size and extension for photo files.
func ValidatePhotoUpload(filename string, size int64) FieldErrors {
	return validateUpload(filename, size, photoExtensions,
		"Invalid file type. Allowed types: JPG, JPEG, PNG, GIF, WEBP")
}

func validateUpload(filename string, size int64, allowed []string, typeMessage string) FieldErrors {
	var errs FieldErrors

	if size > MaxUploadSize {
		errs.Add("file", "File size cannot exceed 10MB.")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	valid := false
	for _, allowedExt := range allowed {
		if ext == allowedExt {
			valid = true
			break
		}
	}
	if !valid {
		errs.Add("file", typeMessage)
	}

	return errs
}
