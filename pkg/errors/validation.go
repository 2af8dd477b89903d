package errors

import (
	"math"
	"unicode"
)

// maxIDLength bounds node and edge identifiers.
const maxIDLength = 256

// ValidateID validates a node or edge identifier.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters
//   - Maximum length of 256 characters
//
// The kind argument ("cell", "component", ...) only flavours the message.
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s id cannot be empty", kind)
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "%s id too long (max %d characters)", kind, maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s id %q contains invalid control characters", kind, id)
		}
	}

	return nil
}

// ValidateSize validates a width/height pair.
// Non-finite values are reported as INVALID_COORDINATE, negative values as
// INVALID_DIMENSIONS. Zero is allowed.
func ValidateSize(kind, id string, width, height float64) error {
	if !finite(width) || !finite(height) {
		return New(ErrCodeInvalidCoordinate, "%s %q has non-finite size %vx%v", kind, id, width, height)
	}
	if width < 0 || height < 0 {
		return New(ErrCodeInvalidDimensions, "%s %q has negative size %vx%v", kind, id, width, height)
	}
	return nil
}

// ValidateNonNegative validates a named numeric option.
func ValidateNonNegative(name string, v float64) error {
	if !finite(v) {
		return New(ErrCodeInvalidOption, "%s must be finite, got %v", name, v)
	}
	if v < 0 {
		return New(ErrCodeInvalidOption, "%s must be non-negative, got %v", name, v)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
