package naming

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"
)

// MinContainerNameLength is the shortest name the blob service accepts.
const MinContainerNameLength = 3

// ValidateContainerName checks name against the blob container grammar and
// returns a list of violations, empty when the name is valid. Container names
// are DNS-1123 labels that are at least three characters long and never
// contain consecutive dashes.
func ValidateContainerName(name string) []string {
	var errs []string
	if len(name) < MinContainerNameLength {
		errs = append(errs, fmt.Sprintf("must be at least %d characters", MinContainerNameLength))
	}
	errs = append(errs, validation.IsDNS1123Label(name)...)
	if strings.Contains(name, "--") {
		errs = append(errs, "must not contain consecutive dashes")
	}
	return errs
}

// IsValidContainerName reports whether name is a valid blob container name.
func IsValidContainerName(name string) bool {
	return len(ValidateContainerName(name)) == 0
}

// ValidationResult reports the outcome of checking one container name.
type ValidationResult struct {
	Name   string   `json:"name" yaml:"name"`
	Valid  bool     `json:"valid" yaml:"valid"`
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Check validates name and wraps the outcome in a ValidationResult.
func Check(name string) ValidationResult {
	errs := ValidateContainerName(name)
	return ValidationResult{Name: name, Valid: len(errs) == 0, Errors: errs}
}
