package services

// FieldErrors maps input field names to human-readable validation messages.
// It is returned by the pure validation functions so handlers can render
// errors inline next to the offending field.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return "validation failed"
}

// ErrorOrNil returns the map as an error when it holds at least one entry.
func (e FieldErrors) ErrorOrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
