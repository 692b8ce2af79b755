// Copyright 2024 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package apperror

import (
	"fmt"

	"github.com/pingcap/errors"
)

var (
	ErrInvalidHandle = errors.Normalize(
		"ring buffer handle is nil or destroyed",
		errors.RFCCodeText("RINGQ:ErrInvalidHandle"),
	)
	ErrInvalidCapacity = errors.Normalize(
		"invalid ring buffer capacity %d, it must be at least 1",
		errors.RFCCodeText("RINGQ:ErrInvalidCapacity"),
	)
	ErrAllocation = errors.Normalize(
		"failed to allocate %d slots for ring buffer",
		errors.RFCCodeText("RINGQ:ErrAllocation"),
	)
	ErrOverflow = errors.Normalize(
		"ring buffer overflowed, an element was evicted",
		errors.RFCCodeText("RINGQ:ErrOverflow"),
	)
	ErrUnderflow = errors.Normalize(
		"ring buffer is empty",
		errors.RFCCodeText("RINGQ:ErrUnderflow"),
	)
	ErrInvalidPolicy = errors.Normalize(
		"invalid queue policy %q",
		errors.RFCCodeText("RINGQ:ErrInvalidPolicy"),
	)
	ErrInvalidScript = errors.Normalize(
		"invalid replay script at line %d: %s",
		errors.RFCCodeText("RINGQ:ErrInvalidScript"),
	)
	ErrInvalidConfig = errors.Normalize(
		"invalid configuration: %s",
		errors.RFCCodeText("RINGQ:ErrInvalidConfig"),
	)
)

type ErrorType int

const (
	// ErrorTypeUnknown is the default error type.
	ErrorTypeUnknown ErrorType = 0

	ErrorTypeFailure         ErrorType = 1
	ErrorTypeAllocation      ErrorType = 2
	ErrorTypeInvalidArgument ErrorType = 3

	ErrorTypeOverflow  ErrorType = 101
	ErrorTypeUnderflow ErrorType = 102

	ErrorTypeInvalidScript ErrorType = 201
	ErrorTypeInvalidConfig ErrorType = 202
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeUnknown:
		return "Unknown"
	case ErrorTypeFailure:
		return "Failure"
	case ErrorTypeAllocation:
		return "AllocationError"
	case ErrorTypeInvalidArgument:
		return "InvalidArgument"
	case ErrorTypeOverflow:
		return "Overflow"
	case ErrorTypeUnderflow:
		return "Underflow"
	case ErrorTypeInvalidScript:
		return "InvalidScript"
	case ErrorTypeInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// AppError carries an ErrorType for failures that have no normalized error,
// such as a missing ring buffer handle.
type AppError struct {
	Type   ErrorType
	Reason string
}

func NewAppError(t ErrorType, reason string) *AppError {
	return &AppError{
		Type:   t,
		Reason: reason,
	}
}

func (e AppError) Error() string {
	return fmt.Sprintf("ErrorType: %s, Reason: %s", e.Type, e.Reason)
}

var typedErrors = []struct {
	err *errors.Error
	tp  ErrorType
}{
	{ErrInvalidHandle, ErrorTypeFailure},
	{ErrAllocation, ErrorTypeAllocation},
	{ErrInvalidCapacity, ErrorTypeInvalidArgument},
	{ErrInvalidPolicy, ErrorTypeInvalidArgument},
	{ErrOverflow, ErrorTypeOverflow},
	{ErrUnderflow, ErrorTypeUnderflow},
	{ErrInvalidScript, ErrorTypeInvalidScript},
	{ErrInvalidConfig, ErrorTypeInvalidConfig},
}

// ErrorTypeOf classifies err into the ring buffer error taxonomy.
// A nil error and unrecognized errors map to ErrorTypeUnknown.
func ErrorTypeOf(err error) ErrorType {
	if err == nil {
		return ErrorTypeUnknown
	}
	if appErr, ok := errors.Cause(err).(*AppError); ok {
		return appErr.Type
	}
	for _, e := range typedErrors {
		if e.err.Equal(err) {
			return e.tp
		}
	}
	return ErrorTypeUnknown
}
