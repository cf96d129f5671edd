package bank

import (
	"fmt"
	"strings"
)

// LoadError indicates the bank source was unreadable or not valid structured data.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load question bank %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ValidationError collects every schema violation found in a bank.
// A bank with any violation is rejected wholesale.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid question bank (%d violations):\n  %s",
		len(e.Violations), strings.Join(e.Violations, "\n  "))
}
