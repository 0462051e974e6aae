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

import "testing"

func TestPathMutPush(t *testing.T) {
	t.Run("onto existing segment", func(t *testing.T) {
		b := mustNewRefBuf(t, "http://example.com/a/b")
		if err := b.PathMut().Push("c"); err != nil {
			t.Fatalf("Push failed: %v", err)
		}
		if got, want := b.Path(), "/a/b/c"; got != want {
			t.Errorf("Path() = %q, want %q", got, want)
		}
	})

	t.Run("path already ends in slash", func(t *testing.T) {
		b := mustNewRefBuf(t, "http://example.com/a/")
		if err := b.PathMut().Push("b"); err != nil {
			t.Fatalf("Push failed: %v", err)
		}
		if got, want := b.Path(), "/a/b"; got != want {
			t.Errorf("Path() = %q, want %q", got, want)
		}
	})

	t.Run("empty path with authority gets leading slash", func(t *testing.T) {
		b := mustNewRefBuf(t, "http://example.com")
		if err := b.PathMut().Push("a"); err != nil {
			t.Fatalf("Push failed: %v", err)
		}
		if got, want := b.Path(), "/a"; got != want {
			t.Errorf("Path() = %q, want %q", got, want)
		}
		if host, ok := b.Authority(); !ok || host != "example.com" {
			t.Errorf("Authority() = (%q, %v), pushing a segment must not merge into the host", host, ok)
		}
	})

	t.Run("empty path, no authority stays rootless", func(t *testing.T) {
		b := mustNewRefBuf(t, "mailto:")
		if err := b.PathMut().Push("foo"); err != nil {
			t.Fatalf("Push failed: %v", err)
		}
		if got, want := b.Path(), "foo"; got != want {
			t.Errorf("Path() = %q, want %q", got, want)
		}
		if got, want := b.String(), "mailto:foo"; got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	})
}

func TestPathMutPop(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		expected string
	}{
		{"pop a real segment", "/a/b/c", "/a/b/"},
		{"pop trailing-slash segment", "/a/", "/"},
		{"pop single segment", "/a", "/"},
		{"pop at bare root preserves excess dot-dot", "/", "/.."},
		{"pop already at .. appends another", "..", "../.."},
		{"pop when last segment is already /.. appends another", "/a/..", "/a/../.."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustNewRefBuf(t, "http:"+tc.path)
			if err := b.PathMut().Pop(); err != nil {
				t.Fatalf("Pop failed: %v", err)
			}
			if got := b.Path(); got != tc.expected {
				t.Errorf("Pop() on %q: Path() = %q, want %q", tc.path, got, tc.expected)
			}
		})
	}

	t.Run("pop on empty path with authority", func(t *testing.T) {
		b := mustNewRefBuf(t, "http://example.com")
		if err := b.PathMut().Pop(); err != nil {
			t.Fatalf("Pop failed: %v", err)
		}
		if got, want := b.Path(), "/.."; got != want {
			t.Errorf("Path() = %q, want %q", got, want)
		}
	})
}

func TestPathMutClear(t *testing.T) {
	b := mustNewRefBuf(t, "http://example.com/a/b")
	if err := b.PathMut().Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if got, want := b.Path(), ""; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	if got, want := b.String(), "http://example.com"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPathMutSymbolicPush(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		segment  string
		expected string
	}{
		{"empty segment is a no-op", "/a/b", "", "/a/b"},
		{"dot segment is a no-op", "/a/b", ".", "/a/b"},
		{"dot-dot pops", "/a/b", "..", "/a/"},
		{"ordinary segment pushes", "/a/b", "c", "/a/b/c"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustNewRefBuf(t, "http://example.com"+tc.path)
			if err := b.PathMut().SymbolicPush(tc.segment); err != nil {
				t.Fatalf("SymbolicPush failed: %v", err)
			}
			if got := b.Path(); got != tc.expected {
				t.Errorf("SymbolicPush(%q) on %q: Path() = %q, want %q", tc.segment, tc.path, got, tc.expected)
			}
		})
	}
}

// TestPathMutSymbolicAppendErrata drives SymbolicAppend with the canonical
// RFC Errata 4547 example and checks it preserves the excess ".." above the
// root the same way resolvePathErrata does for Resolve.
func TestPathMutSymbolicAppendErrata(t *testing.T) {
	b := mustNewRefBuf(t, "http://a/b/c/")
	if err := b.PathMut().SymbolicAppend("../../../g"); err != nil {
		t.Fatalf("SymbolicAppend failed: %v", err)
	}
	if got, want := b.Path(), "/../g"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestPathMutSymbolicAppendNormal(t *testing.T) {
	b := mustNewRefBuf(t, "http://a/b/c/")
	if err := b.PathMut().SymbolicAppend("../g"); err != nil {
		t.Fatalf("SymbolicAppend failed: %v", err)
	}
	if got, want := b.Path(), "/b/g"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestPathMutNormalize(t *testing.T) {
	b := mustNewRefBuf(t, "http://example.com/a/b/../c/./d")
	if err := b.PathMut().Normalize(); err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got, want := b.Path(), "/a/c/d"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}
