package resource

import (
	"fmt"
	"strings"

	"github.com/crmarques/datashelf/faults"
)

// ValidateSegment rejects values that would not stay a single directory name
// once joined onto a base path.
func ValidateSegment(kind string, value string) error {
	if strings.TrimSpace(value) == "" {
		return faults.NewTypedError(faults.ValidationError, kind+" must not be empty", nil)
	}
	if value == "." || value == ".." {
		return faults.NewTypedError(faults.ValidationError, fmt.Sprintf("%s %q is not a valid path segment", kind, value), nil)
	}
	if strings.ContainsAny(value, `/\`) || strings.ContainsRune(value, 0) {
		return faults.NewTypedError(faults.ValidationError, fmt.Sprintf("%s %q must not contain path separators", kind, value), nil)
	}
	return nil
}

// ValidateParams applies ValidateSegment to every param value.
func ValidateParams(params map[string]string) error {
	for _, key := range sortedKeys(params) {
		if err := ValidateSegment("uri param "+key, params[key]); err != nil {
			return err
		}
	}
	return nil
}
