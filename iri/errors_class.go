/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package iri

import "errors"

// ErrorClass categorizes a parse failure by which grammar component
// rejected the input. Callers that need to react differently to, say, a
// bad port versus a bad fragment should match against the sentinel errors
// below with errors.Is rather than parsing Error() strings.
type ErrorClass int

const (
	ErrClassUnknown ErrorClass = iota
	ErrClassScheme
	ErrClassAuthority
	ErrClassUserInfo
	ErrClassHost
	ErrClassPort
	ErrClassPath
	ErrClassSegment
	ErrClassQuery
	ErrClassFragment
	ErrClassReference
	ErrClassValue
	ErrClassPercentEncoding
	ErrClassEncoding
)

// Sentinel errors, one per ErrorClass, intended for errors.Is matching
// against errors returned from this package's Parse* functions and
// mutators.
var (
	ErrInvalidScheme         = errors.New("invalid scheme")
	ErrInvalidAuthority      = errors.New("invalid authority")
	ErrInvalidUserInfo       = errors.New("invalid userinfo")
	ErrInvalidHost           = errors.New("invalid host")
	ErrInvalidPort           = errors.New("invalid port")
	ErrInvalidPath           = errors.New("invalid path")
	ErrInvalidSegment        = errors.New("invalid path segment")
	ErrInvalidQuery          = errors.New("invalid query")
	ErrInvalidFragment       = errors.New("invalid fragment")
	ErrInvalidReference      = errors.New("invalid reference")
	ErrInvalidValue          = errors.New("invalid value")
	ErrInvalidPercentEncoding = errors.New("invalid percent-encoding")
	ErrInvalidEncoding       = errors.New("invalid encoding")
)

var classSentinel = map[ErrorClass]error{
	ErrClassScheme:          ErrInvalidScheme,
	ErrClassAuthority:       ErrInvalidAuthority,
	ErrClassUserInfo:        ErrInvalidUserInfo,
	ErrClassHost:            ErrInvalidHost,
	ErrClassPort:            ErrInvalidPort,
	ErrClassPath:            ErrInvalidPath,
	ErrClassSegment:         ErrInvalidSegment,
	ErrClassQuery:           ErrInvalidQuery,
	ErrClassFragment:        ErrInvalidFragment,
	ErrClassReference:       ErrInvalidReference,
	ErrClassValue:           ErrInvalidValue,
	ErrClassPercentEncoding: ErrInvalidPercentEncoding,
	ErrClassEncoding:        ErrInvalidEncoding,
}

// classifiedError pairs an underlying kindError with the component class
// that rejected it, so errors.Is(err, ErrInvalidHost) works regardless of
// the specific message text.
type classifiedError struct {
	class ErrorClass
	err   error
}

func (e *classifiedError) Error() string { return e.err.Error() }
func (e *classifiedError) Unwrap() error { return e.err }

func (e *classifiedError) Is(target error) bool {
	sentinel, ok := classSentinel[e.class]
	return ok && target == sentinel
}

// classify wraps err with the given ErrorClass. It returns nil if err is
// nil so it can be called unconditionally on a function's return value.
func classify(class ErrorClass, err error) error {
	if err == nil {
		return nil
	}
	return &classifiedError{class: class, err: err}
}

// ClassOf reports the ErrorClass of err, or ErrClassUnknown if err was not
// produced by this package's classification.
func ClassOf(err error) ErrorClass {
	var ce *classifiedError
	if errors.As(err, &ce) {
		return ce.class
	}
	return ErrClassUnknown
}

// parseStage records which grammar component the parser was consuming when
// an error occurred, so run() can classify the error without threading an
// ErrorClass argument through every parse* method.
type parseStage int

const (
	stageUnknown parseStage = iota
	stageScheme
	stageAuthority
	stageUserInfo
	stageHost
	stagePort
	stagePath
	stageQuery
	stageFragment
)

func (s parseStage) class() ErrorClass {
	switch s {
	case stageScheme:
		return ErrClassScheme
	case stageAuthority:
		return ErrClassAuthority
	case stageUserInfo:
		return ErrClassUserInfo
	case stageHost:
		return ErrClassHost
	case stagePort:
		return ErrClassPort
	case stagePath:
		return ErrClassPath
	case stageQuery:
		return ErrClassQuery
	case stageFragment:
		return ErrClassFragment
	default:
		return ErrClassUnknown
	}
}
