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
	"reflect"
	"testing"
)

func TestSegments(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		expected []string
	}{
		{"empty", "", nil},
		{"root only", "/", nil},
		{"absolute", "/a/b", []string{"a", "b"}},
		{"relative", "a/b", []string{"a", "b"}},
		{"double slash in middle", "/a//b", []string{"a", "", "b"}},
		{"double slash at start", "//foo", []string{"", "foo"}},
		{"single segment", "/a", []string{"a"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Segments(tc.path)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Segments(%q) = %#v, want %#v", tc.path, got, tc.expected)
			}
		})
	}
}

func TestNormalizedSegments(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		expected []string
	}{
		{"no dot segments", "/a/b/c", []string{"a", "b", "c"}},
		{"collapses dot-dot", "/a/b/../c", []string{"a", "c"}},
		{"above root collapses, unlike Errata variant", "/../g", []string{"g"}},
		{"empty", "", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizedSegments(tc.path)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("NormalizedSegments(%q) = %#v, want %#v", tc.path, got, tc.expected)
			}
		})
	}
}

func TestParent(t *testing.T) {
	testCases := []struct {
		name       string
		path       string
		expected   string
		expectedOk bool
	}{
		{"empty", "", "", false},
		{"root", "/", "/", true},
		{"single absolute segment", "/a", "/", true},
		{"multiple absolute segments", "/a/b/c", "/a/b/", true},
		{"trailing slash", "/a/b/", "/a/", true},
		{"relative, no parent", "a", "", true},
		{"network-path style leading empty segment", "//foo", "/./", true},
		{"bare double slash", "//", "/./", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Parent(tc.path)
			if got != tc.expected || ok != tc.expectedOk {
				t.Errorf("Parent(%q) = (%q, %v), want (%q, %v)", tc.path, got, ok, tc.expected, tc.expectedOk)
			}
		})
	}
}

func TestDirectory(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		expected string
	}{
		{"empty stays empty", "", ""},
		{"multiple segments", "/a/b/c", "/a/b/"},
		{"root stays root", "/", "/"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Directory(tc.path)
			if got != tc.expected {
				t.Errorf("Directory(%q) = %q, want %q", tc.path, got, tc.expected)
			}
		})
	}
}

func TestSuffix(t *testing.T) {
	testCases := []struct {
		name       string
		path       string
		prefix     string
		expected   string
		expectedOk bool
	}{
		{"simple prefix", "/a/b/c", "/a/b", "c", true},
		{"prefix equals path", "/a/b", "/a/b", "", true},
		{"prefix longer than path", "/a", "/a/b", "", false},
		{"percent-encoded segment matches decoded", "/a/%62/c", "/a/b", "c", true},
		{"not a prefix", "/a/b/c", "/x/y", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Suffix(tc.path, tc.prefix)
			if got != tc.expected || ok != tc.expectedOk {
				t.Errorf("Suffix(%q, %q) = (%q, %v), want (%q, %v)", tc.path, tc.prefix, got, ok, tc.expected, tc.expectedOk)
			}
		})
	}
}
