// Copyright 2023 Vexec Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package vxerr defines the error taxonomy of the engine.  Every error
// surfaced by a kernel or an operator carries one of the codes below together
// with a human readable message rendered from the format table.
package vxerr

import (
	"context"
	"errors"
	"fmt"
)

const (
	// Ok is not an error.
	Ok uint16 = 0

	// Group 1: internal errors
	ErrStart    uint16 = 20100
	ErrInternal uint16 = 20101
	ErrNYI      uint16 = 20102
	ErrOOM      uint16 = 20103

	// Group 2: numeric and type resolution
	ErrUnsupportedType uint16 = 20200
	ErrSupertype       uint16 = 20201
	ErrOutOfRange      uint16 = 20202
	ErrInvalidArg      uint16 = 20203

	// Group 3: unexpected state
	ErrEmptyVector  uint16 = 20300
	ErrSizeNotMatch uint16 = 20301

	// ErrEnd is the max value of the error codes.
	ErrEnd uint16 = 65535
)

var errorMsgRefer = map[uint16]string{
	ErrStart:    "internal error: error code start",
	ErrInternal: "internal error: %s",
	ErrNYI:      "%s is not yet implemented",
	ErrOOM:      "error: out of memory",

	ErrUnsupportedType: "unsupported type: %s",
	ErrSupertype:       "failed to determine supertype of %s and %s",
	ErrOutOfRange:      "data out of range: data type %s, %s",
	ErrInvalidArg:      "invalid argument %s, bad value %v",

	ErrEmptyVector:  "vector is empty",
	ErrSizeNotMatch: "size of vectors does not match: %d vs %d",
}

// Error is the only error type produced by this module.
type Error struct {
	code    uint16
	message string
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

// newError renders the message format registered for code.  The ctx argument
// exists so call sites keep a context-first signature; tracing hooks can be
// attached here later without touching every caller.
func newError(_ context.Context, code uint16, args ...any) *Error {
	format, has := errorMsgRefer[code]
	if !has {
		panic(fmt.Sprintf("not exist error code: %d", code))
	}
	if len(args) == 0 {
		return &Error{code: code, message: format}
	}
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

func NewInternalError(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrInternal, fmt.Sprintf(msg, args...))
}

func NewInternalErrorNoCtx(msg string, args ...any) *Error {
	return NewInternalError(context.Background(), msg, args...)
}

func NewNYI(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrNYI, fmt.Sprintf(msg, args...))
}

func NewOOM(ctx context.Context) *Error {
	return newError(ctx, ErrOOM)
}

func NewUnsupportedType(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrUnsupportedType, fmt.Sprintf(msg, args...))
}

func NewSupertype(ctx context.Context, left, right string) *Error {
	return newError(ctx, ErrSupertype, left, right)
}

func NewOutOfRange(ctx context.Context, typ string, msg string, args ...any) *Error {
	return newError(ctx, ErrOutOfRange, typ, fmt.Sprintf(msg, args...))
}

func NewInvalidArg(ctx context.Context, arg string, val any) *Error {
	return newError(ctx, ErrInvalidArg, arg, val)
}

func NewEmptyVector(ctx context.Context) *Error {
	return newError(ctx, ErrEmptyVector)
}

func NewSizeNotMatch(ctx context.Context, want, got int) *Error {
	return newError(ctx, ErrSizeNotMatch, want, got)
}

func code(err error) uint16 {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return ErrEnd
}

func IsErrUnsupportedType(err error) bool {
	return code(err) == ErrUnsupportedType
}

func IsErrSupertype(err error) bool {
	return code(err) == ErrSupertype
}

func IsErrSizeNotMatch(err error) bool {
	return code(err) == ErrSizeNotMatch
}

func IsErrOOM(err error) bool {
	return code(err) == ErrOOM
}
