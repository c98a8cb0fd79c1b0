// Copyright 2025 Dados Brasil

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package apierror classifies failures of the public API calls. Every
// operation in this module returns errors tagged with exactly one Kind, so
// the caller can distinguish a broken round trip from a bad argument without
// string matching.
package apierror

import (
	"errors"
	"fmt"
)

// Kind is the failure class of an API call.
type Kind string

// Failure classes. None of them is retried internally; all surface directly
// to the caller.
const (
	// Transport is a network or HTTP-level failure of the round trip.
	Transport = Kind("transport")
	// NotFound means the remote service reports no such resource.
	NotFound = Kind("not found")
	// MalformedResponse means the response does not match the expected shape.
	MalformedResponse = Kind("malformed response")
	// InvalidCategory means the caller supplied an unrecognized enumerated
	// token (reference category, series name and the like).
	InvalidCategory = Kind("invalid category")
	// InvalidSelection means the query selection cannot be executed as built.
	InvalidSelection = Kind("invalid selection")
)

// Error is a kind-tagged error, optionally wrapping its cause.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

var _ error = &Error{}

// Kind returns the failure class of the error.
func (e *Error) Kind() Kind { return e.kind }

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

// Unwrap makes the cause visible to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.cause }

// New creates a leaf error of the given kind.
func New(kind Kind, format string, args ...interface{}) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Annotate wraps err with a message and tags it with the kind. A nil err
// returns nil, so it can wrap a call result unconditionally.
func Annotate(err error, kind Kind, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...), cause: err}
}

// KindOf extracts the Kind of the outermost classified error in the chain,
// or "" when the error carries no classification.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return Kind("")
}

// Is tests whether the error chain is classified with the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
