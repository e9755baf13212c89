package projection

import (
	"errors"
	"fmt"
)

// The engine's error taxonomy. Validation failures are detected fail-fast
// before any computation; missing mandatory actuals (the 2024 rent base for
// transition years) are hard errors. Solver non-convergence is not an error
// at all: it travels as Result.Converged=false.
var (
	ErrValidation             = errors.New("VALIDATION_ERROR")
	ErrHistoricalDataNotFound = errors.New("HISTORICAL_DATA_NOT_FOUND")
)

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrHistoricalDataNotFound, fmt.Sprintf(format, args...))
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound reports whether err is a missing-actuals failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrHistoricalDataNotFound)
}
