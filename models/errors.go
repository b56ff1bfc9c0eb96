package models

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError names the offending input and the constraint it broke.
type InvalidParameterError struct {
	Param      string
	Value      float64
	Constraint string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Param, e.Value, e.Constraint)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

func positive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return &InvalidParameterError{Param: name, Value: v, Constraint: "must be strictly positive and finite"}
	}
	return nil
}

func finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidParameterError{Param: name, Value: v, Constraint: "must be finite"}
	}
	return nil
}

// RequirePositive returns an InvalidParameterError unless v is finite and greater than zero.
func RequirePositive(name string, v float64) error {
	return positive(name, v)
}
