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

func mustNewRefBuf(t *testing.T, s string) *RefBuf {
	t.Helper()
	b, err := NewRefBuf(s)
	if err != nil {
		t.Fatalf("NewRefBuf(%q) failed: %v", s, err)
	}
	return b
}

func TestNewRefBuf(t *testing.T) {
	b := mustNewRefBuf(t, "http://example.com/a?q#f")
	if got, want := b.String(), "http://example.com/a?q#f"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if scheme, ok := b.Scheme(); !ok || scheme != "http" {
		t.Errorf("Scheme() = (%q, %v), want (%q, true)", scheme, ok, "http")
	}

	if _, err := NewRefBuf("http://[invalid"); err == nil {
		t.Error("NewRefBuf with malformed input should fail")
	}
}

func TestRefBufSetScheme(t *testing.T) {
	t.Run("replace scheme", func(t *testing.T) {
		b := mustNewRefBuf(t, "http://example.com/a")
		if err := b.SetScheme("https"); err != nil {
			t.Fatalf("SetScheme failed: %v", err)
		}
		if got, want := b.String(), "https://example.com/a"; got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	})

	t.Run("remove scheme, unambiguous path", func(t *testing.T) {
		b := mustNewRefBuf(t, "a:b")
		if err := b.SetScheme(""); err != nil {
			t.Fatalf("SetScheme(\"\") failed: %v", err)
		}
		if got, want := b.String(), "b"; got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
		if b.IsAbsolute() {
			t.Error("ref should be relative after removing its scheme")
		}
	})

	t.Run("remove scheme, ambiguous first segment is disambiguated", func(t *testing.T) {
		b := mustNewRefBuf(t, "a:b:c")
		if err := b.SetScheme(""); err != nil {
			t.Fatalf("SetScheme(\"\") failed: %v", err)
		}
		if got, want := b.String(), "./b:c"; got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
		if b.IsAbsolute() {
			t.Error("ref must not be reparsed as absolute with scheme \"b\"")
		}
		if got, want := b.Path(), "./b:c"; got != want {
			t.Errorf("Path() = %q, want %q", got, want)
		}
	})

	t.Run("invalid scheme is rejected and buffer left untouched", func(t *testing.T) {
		b := mustNewRefBuf(t, "http://example.com/a")
		orig := b.String()
		err := b.SetScheme("1bad")
		if err == nil {
			t.Fatal("expected error for invalid scheme")
		}
		if ClassOf(err) != ErrClassScheme {
			t.Errorf("ClassOf(err) = %v, want ErrClassScheme", ClassOf(err))
		}
		if got := b.String(); got != orig {
			t.Errorf("buffer mutated despite error: %q, want unchanged %q", got, orig)
		}
	})
}

func TestRefBufSetAuthority(t *testing.T) {
	t.Run("add authority", func(t *testing.T) {
		b := mustNewRefBuf(t, "file:/a/b")
		host := "example.com"
		if err := b.SetAuthority(&host); err != nil {
			t.Fatalf("SetAuthority failed: %v", err)
		}
		if got, want := b.String(), "file://example.com/a/b"; got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	})

	t.Run("remove authority, unambiguous path", func(t *testing.T) {
		b := mustNewRefBuf(t, "http://example.com/a")
		if err := b.SetAuthority(nil); err != nil {
			t.Fatalf("SetAuthority(nil) failed: %v", err)
		}
		if got, want := b.String(), "http:/a"; got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
		if _, ok := b.Authority(); ok {
			t.Error("authority should be absent after removal")
		}
	})

	t.Run("remove authority, path starting with // is disambiguated", func(t *testing.T) {
		b := mustNewRefBuf(t, "http://example.com//a")
		if err := b.SetAuthority(nil); err != nil {
			t.Fatalf("SetAuthority(nil) failed: %v", err)
		}
		if _, ok := b.Authority(); ok {
			t.Error("authority should be absent after removal")
		}
		if got, want := b.Path(), "/.//a"; got != want {
			t.Errorf("Path() = %q, want %q", got, want)
		}
	})
}

func TestRefBufSetPath(t *testing.T) {
	t.Run("replace path", func(t *testing.T) {
		b := mustNewRefBuf(t, "http://example.com/a")
		if err := b.SetPath("/b/c"); err != nil {
			t.Fatalf("SetPath failed: %v", err)
		}
		if got, want := b.String(), "http://example.com/b/c"; got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	})

	t.Run("no authority, // path is disambiguated", func(t *testing.T) {
		b := mustNewRefBuf(t, "x")
		if err := b.SetPath("//evil"); err != nil {
			t.Fatalf("SetPath failed: %v", err)
		}
		if _, ok := b.Authority(); ok {
			t.Error("must not be reparsed with an authority")
		}
		if got, want := b.Path(), "/.//evil"; got != want {
			t.Errorf("Path() = %q, want %q", got, want)
		}
	})
}

func TestRefBufSetQuery(t *testing.T) {
	b := mustNewRefBuf(t, "http://example.com/a")

	q := "x=1"
	if err := b.SetQuery(&q); err != nil {
		t.Fatalf("SetQuery failed: %v", err)
	}
	if got, want := b.String(), "http://example.com/a?x=1"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	if err := b.SetQuery(nil); err != nil {
		t.Fatalf("SetQuery(nil) failed: %v", err)
	}
	if _, ok := b.Query(); ok {
		t.Error("query should be absent after removal")
	}
	if got, want := b.String(), "http://example.com/a"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRefBufSetFragment(t *testing.T) {
	b := mustNewRefBuf(t, "http://example.com/a")

	f := "top"
	if err := b.SetFragment(&f); err != nil {
		t.Fatalf("SetFragment failed: %v", err)
	}
	if got, want := b.String(), "http://example.com/a#top"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	if err := b.SetFragment(nil); err != nil {
		t.Fatalf("SetFragment(nil) failed: %v", err)
	}
	if _, ok := b.Fragment(); ok {
		t.Error("fragment should be absent after removal")
	}
	if got, want := b.String(), "http://example.com/a"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRefBufRef(t *testing.T) {
	b := mustNewRefBuf(t, "http://example.com/a")
	snapshot := b.Ref()

	if err := b.SetPath("/b"); err != nil {
		t.Fatalf("SetPath failed: %v", err)
	}
	if got, want := snapshot.Path(), "/a"; got != want {
		t.Errorf("snapshot mutated: Path() = %q, want %q", got, want)
	}
	if got, want := b.Path(), "/b"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}
