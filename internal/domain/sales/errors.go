package sales

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownItemType    = errors.New("item_type is not a known category")
	ErrInvalidWeight      = errors.New("item_weight must be between 1 and 25")
	ErrInvalidVisibility  = errors.New("item_visibility must be between 0 and 1")
	ErrInvalidMRP         = errors.New("item_mrp must be greater than zero")
	ErrInvalidYear        = errors.New("outlet_establishment_year must be greater than zero")
	ErrMissingField       = errors.New("required field is missing")
	ErrNonFiniteValue     = errors.New("numeric field must be a finite number")
	ErrNonFiniteOutput    = errors.New("model output is not a finite number")
	ErrPredictionNotFound = errors.New("prediction not found")
)

// UnknownCategoryError is returned when a fitted encoder sees a label outside its vocabulary.
type UnknownCategoryError struct {
	Field string
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category %q for field %s", e.Value, e.Field)
}

// MissingArtifactError lists every artifact that could not be found at startup.
type MissingArtifactError struct {
	Names []string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("missing artifacts: %s", strings.Join(e.Names, ", "))
}

// IsRejected reports whether err is a per-request rejection rather than a system failure.
func IsRejected(err error) bool {
	var unknown *UnknownCategoryError
	if errors.As(err, &unknown) || errors.Is(err, ErrNonFiniteOutput) {
		return true
	}
	return IsInvalidInput(err)
}

// IsInvalidInput reports whether err comes from record validation.
func IsInvalidInput(err error) bool {
	for _, target := range []error{
		ErrUnknownItemType,
		ErrInvalidWeight,
		ErrInvalidVisibility,
		ErrInvalidMRP,
		ErrInvalidYear,
		ErrMissingField,
		ErrNonFiniteValue,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
