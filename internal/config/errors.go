package config

import (
	"fmt"
	"strings"
)

// ValidationError reports one invalid field of an input file
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one file
type ValidationErrors []*ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

func (errs *ValidationErrors) add(field, format string, args ...any) {
	*errs = append(*errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (errs ValidationErrors) err() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}
