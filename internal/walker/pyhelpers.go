package walker

import (
	"fmt"

	"formatic/internal/pyvalue"
)

// parseValue is a thin alias over pyvalue.Parse, kept local so walker files
// read as operating on "values" without every call site importing pyvalue
// directly.
func parseValue(raw string) (pyvalue.Value, error) {
	return pyvalue.Parse(raw)
}

// parseText parses raw as a Python literal and asserts it is a str.
func parseText(raw string) (string, error) {
	v, err := pyvalue.Parse(raw)
	if err != nil {
		return "", err
	}
	s, ok := v.Text()
	if !ok {
		return "", fmt.Errorf("expected str, got %s", v.Kind())
	}
	return s, nil
}
