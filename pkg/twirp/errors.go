// Copyright 2018 Twitch Interactive, Inc.  All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"). You may not
// use this file except in compliance with the License. A copy of the License is
// located at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// or in the "license" file accompanying this file. This file is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
// express or implied. See the License for the specific language governing
// permissions and limitations under the License.

package twirp

import (
	"encoding/json"
	"net/http"
)

// ErrorCode represents a Twirp error type.
type ErrorCode string

// Valid Twirp error types. Most error types are equivalent to gRPC status codes
// and follow the same semantics.
const (
	// Canceled indicates the operation was cancelled (typically by the caller).
	Canceled ErrorCode = "canceled"

	// InvalidArgument indicates client specified an invalid argument.
	InvalidArgument ErrorCode = "invalid_argument"

	// DeadlineExceeded means operation expired before completion.
	DeadlineExceeded ErrorCode = "deadline_exceeded"

	// NotFound means some requested entity was not found.
	NotFound ErrorCode = "not_found"

	// BadRoute means that the requested URL path wasn't routable to a Twirp
	// service and method.
	BadRoute ErrorCode = "bad_route"

	// Internal errors.
	Internal ErrorCode = "internal"

	// Unavailable indicates the service is currently unavailable.
	Unavailable ErrorCode = "unavailable"
)

// Error represents an error in a Twirp service.
type Error interface {
	// Code is of the valid error codes.
	Code() ErrorCode

	// Msg returns a human-readable, unstructured messages describing the error.
	Msg() string

	// Meta returns the stored value for the given key. If the key has no set
	// value, Meta returns an empty string.
	Meta(key string) string

	// WithMeta returns a copy of the Error with the given key-value pair set
	// as metadata.
	WithMeta(key string, val string) Error

	// MetaMap returns the complete key-value metadata map stored on the error.
	MetaMap() map[string]string

	// Error returns a string of the form "twirp error <Type>: <Msg>"
	Error() string
}

// NewError is the generic constructor for a twirp.Error.
func NewError(code ErrorCode, msg string) Error {
	return &twerr{
		code: code,
		msg:  msg,
	}
}

// InvalidArgumentError constructor for the common InvalidArgument error.
func InvalidArgumentError(argument string, validationMsg string) Error {
	err := NewError(InvalidArgument, argument+" "+validationMsg)
	err = err.WithMeta("argument", argument)
	return err
}

// NotFoundError constructor for the common NotFound error.
func NotFoundError(msg string) Error {
	return NewError(NotFound, msg)
}

// InternalErrorWith makes an internal error, wrapping the original error and
// using it for the error message, and with metadata "cause" with the original
// error type. The original error is kept as Cause.
func InternalErrorWith(err error) Error {
	return &wrappedErr{
		wrapper: NewError(Internal, err.Error()).WithMeta("cause", "error"),
		cause:   err,
	}
}

func badRouteError(msg string, method, url string) Error {
	err := NewError(BadRoute, msg)
	err = err.WithMeta("twirp_invalid_route", method+" "+url)
	return err
}

type twerr struct {
	code ErrorCode
	msg  string
	meta map[string]string
}

func (e *twerr) Code() ErrorCode { return e.code }
func (e *twerr) Msg() string     { return e.msg }

func (e *twerr) Meta(key string) string {
	if e.meta != nil {
		return e.meta[key]
	}
	return ""
}

func (e *twerr) WithMeta(key string, value string) Error {
	newErr := &twerr{
		code: e.code,
		msg:  e.msg,
		meta: make(map[string]string, len(e.meta)),
	}
	for k, v := range e.meta {
		newErr.meta[k] = v
	}
	newErr.meta[key] = value
	return newErr
}

func (e *twerr) MetaMap() map[string]string {
	return e.meta
}

func (e *twerr) Error() string {
	return "twirp error " + string(e.code) + ": " + e.msg
}

type wrappedErr struct {
	wrapper Error
	cause   error
}

func (e *wrappedErr) Code() ErrorCode            { return e.wrapper.Code() }
func (e *wrappedErr) Msg() string                { return e.wrapper.Msg() }
func (e *wrappedErr) Meta(key string) string     { return e.wrapper.Meta(key) }
func (e *wrappedErr) MetaMap() map[string]string { return e.wrapper.MetaMap() }
func (e *wrappedErr) Error() string              { return e.wrapper.Error() }
func (e *wrappedErr) WithMeta(key string, val string) Error {
	return &wrappedErr{
		wrapper: e.wrapper.WithMeta(key, val),
		cause:   e.cause,
	}
}
func (e *wrappedErr) Cause() error  { return e.cause }
func (e *wrappedErr) Unwrap() error { return e.cause }

// ServerHTTPStatusFromErrorCode maps a Twirp error type into a similar HTTP
// response status. It is used by the Twirp server handler to set the HTTP
// response status code. Returns 0 if the ErrorCode is invalid.
func ServerHTTPStatusFromErrorCode(code ErrorCode) int {
	switch code {
	case Canceled:
		return 408 // RequestTimeout
	case InvalidArgument:
		return 400 // BadRequest
	case DeadlineExceeded:
		return 408 // RequestTimeout
	case NotFound:
		return 404 // Not Found
	case BadRoute:
		return 404 // Not Found
	case Internal:
		return 500 // Internal Server Error
	case Unavailable:
		return 503 // Service Unavailable
	default:
		return 0 // Invalid!
	}
}

// ErrorFromResponse builds a twirp.Error from a non-200 HTTP response.
func ErrorFromResponse(resp *http.Response) Error {
	var tj struct {
		Code string            `json:"code"`
		Msg  string            `json:"msg"`
		Meta map[string]string `json:"meta,omitempty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tj); err != nil || tj.Code == "" {
		return NewError(Internal, "error from intermediary with HTTP status "+resp.Status)
	}

	twerr := NewError(ErrorCode(tj.Code), tj.Msg)
	for k, v := range tj.Meta {
		twerr = twerr.WithMeta(k, v)
	}
	return twerr
}
