// Package validate holds the pure per-field validators of the registration
// dialog. Each is a total function from raw input to a value or a typed
// rejection; none of them touches stores or sessions, so every dialog state
// is unit-testable in isolation.
package validate

import (
	"errors"
	"strconv"
	"strings"
)

// Rejection reasons. The engine maps these to user-facing re-prompts.
var (
	ErrEmpty      = errors.New("input is empty")
	ErrNotANumber = errors.New("not a number")
	ErrOutOfRange = errors.New("out of range")
)

// MaxVehicles bounds how many vehicles one registration may declare.
const MaxVehicles = 3

// Text accepts any non-empty input verbatim apart from trimming surrounding
// whitespace. Name, student ID, phone, and plate fields are all deliberately
// permissive; tightening them would reject inputs the deployed bot accepts.
func Text(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmpty
	}
	return trimmed, nil
}

// VehicleCount parses the declared vehicle count and bounds it to
// [1, MaxVehicles].
func VehicleCount(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, ErrNotANumber
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, ErrNotANumber
	}
	if n < 1 || n > MaxVehicles {
		return 0, ErrOutOfRange
	}
	return n, nil
}
