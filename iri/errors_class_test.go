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

import (
	"errors"
	"testing"
)

func TestClassifyNil(t *testing.T) {
	if err := classify(ErrClassHost, nil); err != nil {
		t.Errorf("classify(_, nil) = %v, want nil", err)
	}
}

// TestClassOfDirect checks ClassOf and errors.Is against errors returned
// directly by classify().
func TestClassOfDirect(t *testing.T) {
	testCases := []struct {
		name     string
		class    ErrorClass
		sentinel error
	}{
		{"scheme", ErrClassScheme, ErrInvalidScheme},
		{"authority", ErrClassAuthority, ErrInvalidAuthority},
		{"userinfo", ErrClassUserInfo, ErrInvalidUserInfo},
		{"host", ErrClassHost, ErrInvalidHost},
		{"port", ErrClassPort, ErrInvalidPort},
		{"path", ErrClassPath, ErrInvalidPath},
		{"segment", ErrClassSegment, ErrInvalidSegment},
		{"query", ErrClassQuery, ErrInvalidQuery},
		{"fragment", ErrClassFragment, ErrInvalidFragment},
		{"reference", ErrClassReference, ErrInvalidReference},
		{"value", ErrClassValue, ErrInvalidValue},
		{"percent-encoding", ErrClassPercentEncoding, ErrInvalidPercentEncoding},
		{"encoding", ErrClassEncoding, ErrInvalidEncoding},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := classify(tc.class, &kindError{message: "boom"})
			if got := ClassOf(err); got != tc.class {
				t.Errorf("ClassOf(err) = %v, want %v", got, tc.class)
			}
			if !errors.Is(err, tc.sentinel) {
				t.Errorf("errors.Is(err, %v) = false, want true", tc.sentinel)
			}
		})
	}
}

func TestClassOfMismatchedSentinel(t *testing.T) {
	err := classify(ErrClassHost, &kindError{message: "bad host"})
	if errors.Is(err, ErrInvalidPort) {
		t.Error("errors.Is(host error, ErrInvalidPort) = true, want false")
	}
}

func TestClassOfUnclassifiedError(t *testing.T) {
	if got := ClassOf(errors.New("plain error")); got != ErrClassUnknown {
		t.Errorf("ClassOf(plain error) = %v, want ErrClassUnknown", got)
	}
	if got := ClassOf(nil); got != ErrClassUnknown {
		t.Errorf("ClassOf(nil) = %v, want ErrClassUnknown", got)
	}
}

func TestClassifiedErrorUnwrap(t *testing.T) {
	inner := &kindError{message: "bad scheme"}
	err := classify(ErrClassScheme, inner)
	if errors.Unwrap(err) != inner {
		t.Error("Unwrap() did not return the original wrapped error")
	}
	if err.Error() != inner.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), inner.Error())
	}
}

func TestParseStageClass(t *testing.T) {
	testCases := []struct {
		stage    parseStage
		expected ErrorClass
	}{
		{stageScheme, ErrClassScheme},
		{stageAuthority, ErrClassAuthority},
		{stageUserInfo, ErrClassUserInfo},
		{stageHost, ErrClassHost},
		{stagePort, ErrClassPort},
		{stagePath, ErrClassPath},
		{stageQuery, ErrClassQuery},
		{stageFragment, ErrClassFragment},
		{stageUnknown, ErrClassUnknown},
	}
	for _, tc := range testCases {
		if got := tc.stage.class(); got != tc.expected {
			t.Errorf("parseStage(%d).class() = %v, want %v", tc.stage, got, tc.expected)
		}
	}
}

// TestClassOfSetSchemePreCheck checks that the classified error returned
// by SetScheme's own validity check resolves to ErrClassScheme.
func TestClassOfSetSchemePreCheck(t *testing.T) {
	b := mustNewRefBuf(t, "http://example.com/a")
	err := b.SetScheme("1bad")
	if err == nil {
		t.Fatal("expected error for invalid scheme")
	}
	// SetScheme's own validity check classifies directly, without going
	// through commit, and ClassOf resolves it.
	if got := ClassOf(err); got != ErrClassScheme {
		t.Errorf("ClassOf(err) = %v, want ErrClassScheme", got)
	}
}
