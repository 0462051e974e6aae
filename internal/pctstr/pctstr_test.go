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

package pctstr

import "testing"

func TestDecode(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"no escapes", "abc", "abc"},
		{"single escape", "%7E", "~"},
		{"lowercase hex digits", "%7e", "~"},
		{"mixed-case hex digits", "%7E%7e", "~~"},
		{"escape at start", "%61bc", "abc"},
		{"escape at end", "ab%63", "abc"},
		{"trailing bare percent passed through", "abc%", "abc%"},
		{"truncated escape passed through", "abc%7", "abc%7"},
		{"invalid hex digit passed through", "abc%7z", "abc%7z"},
		{"empty string", "", ""},
		{"percent-encoded percent sign", "100%25", "100%"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := string(Decode(tc.input)); got != tc.expected {
				t.Errorf("Decode(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     string
		expected bool
	}{
		{"identical", "abc", "abc", true},
		{"decoded forms match", "%7Eabc", "~abc", true},
		{"case-insensitive hex digits", "%7eabc", "%7Eabc", true},
		{"different decoded bytes", "%61", "%62", false},
		{"different length after decode", "a", "ab", false},
		{"both empty", "", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Equal(tc.a, tc.b); got != tc.expected {
				t.Errorf("Equal(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	if c := Compare("a", "b"); c >= 0 {
		t.Errorf(`Compare("a", "b") = %d, want < 0`, c)
	}
	if c := Compare("%61", "a"); c != 0 {
		t.Errorf(`Compare("%%61", "a") = %d, want 0`, c)
	}
	if c := Compare("b", "a"); c <= 0 {
		t.Errorf(`Compare("b", "a") = %d, want > 0`, c)
	}
}

func TestHash(t *testing.T) {
	if Hash("%7Eabc") != Hash("~abc") {
		t.Error("Hash of equivalent pct-encoded and decoded forms differ")
	}
	if Hash("a") == Hash("ab") {
		t.Error("Hash collided for distinct short inputs (allowed in principle, but suspicious here)")
	}
}
