package parsererror

import "fmt"

// ValidationError represents a document validation failure
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// RequiredConfigError represents a missing required configuration entry.
// Fatal for the current invoice or document; callers catch it and
// continue with the next one.
type RequiredConfigError struct {
	Key string
}

func (e *RequiredConfigError) Error() string {
	return fmt.Sprintf("config entry %s is required", e.Key)
}

// InvalidLayoutError represents an unrecognized voucher layout setting.
type InvalidLayoutError struct {
	Layout string
}

func (e *InvalidLayoutError) Error() string {
	return fmt.Sprintf("unknown voucher layout '%s' (must be 'interface' or 'upload')", e.Layout)
}
