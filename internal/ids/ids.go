package ids

import "github.com/segmentio/ksuid"

// New returns a sortable unique identifier for a new record.
func New() string {
	return ksuid.New().String()
}

// IsValid reports whether s is a well-formed record identifier.
func IsValid(s string) bool {
	if s == "" {
		return false
	}
	_, err := ksuid.Parse(s)
	return err == nil
}
