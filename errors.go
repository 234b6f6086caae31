// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmf

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for errors.Is.  Every typed error below reports Is == true
// for its own kind, so callers never need to know the concrete type.
var (
	ErrIndexRange           = errors.New("index out of range")
	ErrLengthMismatch       = errors.New("length mismatch")
	ErrDuplicateIndex       = errors.New("duplicate index")
	ErrInvalidStep          = errors.New("slice step cannot be zero")
	ErrInvalidParameter     = errors.New("invalid parameter value")
	ErrNonExistentParameter = errors.New("non-existent parameter")
	ErrInvalidDimensions    = errors.New("invalid dimensions")
	ErrNotImplemented       = errors.New("not implemented")
)

// IndexRangeError reports a local, flat or mask index outside of its valid bound.
type IndexRangeError struct {
	// what was being indexed, e.g. "group", "composite", "mask"
	What  string
	Index int
	Size  int
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf("index %d not in %s of size %d", e.Index, e.What, e.Size)
}

func (e *IndexRangeError) Is(target error) bool { return target == ErrIndexRange }

// LengthMismatchError reports a boolean mask whose length differs from the target extent.
type LengthMismatchError struct {
	Expected int
	Actual   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("size of mask (%d) does not match size of population (%d)", e.Actual, e.Expected)
}

func (e *LengthMismatchError) Is(target error) bool { return target == ErrLengthMismatch }

// DuplicateIndexError reports an explicit index list that contains a repeat.
type DuplicateIndexError struct {
	Index int
}

func (e *DuplicateIndexError) Error() string {
	return fmt.Sprintf("index %d given more than once", e.Index)
}

func (e *DuplicateIndexError) Is(target error) bool { return target == ErrDuplicateIndex }

// InvalidStepError reports a slice with a zero step.
type InvalidStepError struct{}

func (e *InvalidStepError) Error() string { return ErrInvalidStep.Error() }

func (e *InvalidStepError) Is(target error) bool { return target == ErrInvalidStep }

// InvalidParameterError reports a construction argument rejected by the engine,
// such as a non-positive population size or an unsupported cell type.
type InvalidParameterError struct {
	Name   string
	Value  any
	Reason string
	cause  error
}

func (e *InvalidParameterError) Error() string {
	msg := fmt.Sprintf("invalid value %v for parameter %s", e.Value, e.Name)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *InvalidParameterError) Is(target error) bool { return target == ErrInvalidParameter }

func (e *InvalidParameterError) Unwrap() error { return e.cause }

// NewInvalidParameter returns an InvalidParameterError wrapping cause, which may be nil.
func NewInvalidParameter(name string, value any, reason string, cause error) *InvalidParameterError {
	return &InvalidParameterError{Name: name, Value: value, Reason: reason, cause: cause}
}

// NonExistentParameterError reports a parameter name that the cell model does not have.
type NonExistentParameterError struct {
	Parameter string
	Model     string
	Valid     []string
}

func (e *NonExistentParameterError) Error() string {
	return fmt.Sprintf("%s (valid parameters for %s are: %s)", e.Parameter, e.Model, strings.Join(e.Valid, ", "))
}

func (e *NonExistentParameterError) Is(target error) bool { return target == ErrNonExistentParameter }

// InvalidDimensionsError reports a value array whose size does not match its target.
type InvalidDimensionsError struct {
	Expected int
	Actual   int
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("number of elements in the given array (%d) must be equal to the population size (%d)", e.Actual, e.Expected)
}

func (e *InvalidDimensionsError) Is(target error) bool { return target == ErrInvalidDimensions }

// NotImplementedError marks an API path the engine does not provide.
type NotImplementedError struct {
	Op string
}

func (e *NotImplementedError) Error() string { return e.Op + ": not implemented" }

func (e *NotImplementedError) Is(target error) bool { return target == ErrNotImplemented }

// NotImplemented returns a NotImplementedError for the named operation.
func NotImplemented(op string) error { return &NotImplementedError{Op: op} }
