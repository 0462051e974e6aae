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

import "bytes"

// RefBuf is an owned, mutable IRI reference buffer. Unlike Ref, which
// borrows an immutable string, RefBuf exclusively owns a growable byte
// buffer and exposes component-level mutators (SetScheme, SetAuthority,
// SetPath, SetQuery, SetFragment) plus the mutable views PathMut and
// AuthorityMut that splice into that buffer directly.
//
// Every mutator re-establishes the component-boundary invariants (I3-I6 in
// the design notes) by inserting a disambiguating "/." or "./" prefix
// whenever the edit would otherwise make the buffer re-parse differently
// than intended (for example, clearing the authority of "//host//a" must
// not leave the path "//a" looking like a fresh network-path reference).
// After any such rewrite the buffer is always re-validated by a full
// re-parse, so RefBuf can never hold bytes that don't satisfy the
// reference grammar: a mutator either commits a valid result or returns an
// error and leaves the buffer untouched.
type RefBuf struct {
	buf       []byte
	positions Positions
}

// NewRefBuf parses s as an IRI reference and returns it as an owned,
// mutable buffer.
func NewRefBuf(s string) (*RefBuf, error) {
	pos, err := run(s, nil, false, &voidOutputBuffer{})
	if err != nil {
		return nil, newParseError(err)
	}
	return &RefBuf{buf: []byte(s), positions: pos}, nil
}

// Bytes returns the buffer's current contents. The returned slice aliases
// RefBuf's internal storage and must not be modified by the caller.
func (b *RefBuf) Bytes() []byte { return b.buf }

// String returns the buffer's current contents as a string.
func (b *RefBuf) String() string { return string(b.buf) }

// Ref returns a borrowed, immutable snapshot of the buffer's current
// contents. The snapshot is independent of subsequent mutations to b.
func (b *RefBuf) Ref() *Ref {
	return &Ref{iri: string(b.buf), positions: b.positions}
}

func (b *RefBuf) IsAbsolute() bool          { return b.Ref().IsAbsolute() }
func (b *RefBuf) Scheme() (string, bool)    { return b.Ref().Scheme() }
func (b *RefBuf) Authority() (string, bool) { return b.Ref().Authority() }
func (b *RefBuf) Path() string              { return b.Ref().Path() }
func (b *RefBuf) Query() (string, bool)     { return b.Ref().Query() }
func (b *RefBuf) Fragment() (string, bool)  { return b.Ref().Fragment() }

// commit re-parses buf in full and, if it is a valid reference, installs it
// (and its freshly computed positions) as the buffer's new contents. On
// failure b is left unchanged.
func (b *RefBuf) commit(buf []byte) error {
	pos, err := run(string(buf), nil, false, &voidOutputBuffer{})
	if err != nil {
		return newParseError(err)
	}
	b.buf = buf
	b.positions = pos
	return nil
}

// disambiguateRootlessColon guards against a path whose first segment
// would be misread as a scheme once there is no scheme component: if the
// bytes up to the first '/' contain a ':', a "./" prefix is spliced in so
// re-parsing takes the rootless-path branch instead of the scheme branch.
func disambiguateRootlessColon(buf []byte) []byte {
	if bytes.HasPrefix(buf, []byte("//")) {
		return buf
	}
	firstSeg := buf
	if i := bytes.IndexByte(buf, '/'); i >= 0 {
		firstSeg = buf[:i]
	}
	if bytes.IndexByte(firstSeg, ':') >= 0 {
		return insertAt(buf, 0, []byte("./"))
	}
	return buf
}

// SetScheme replaces the scheme component. An empty scheme removes it
// entirely, turning an absolute reference into a relative one; if that
// would leave a path whose first segment looks like a scheme (e.g. a path
// of "a:b" with no authority), a "./" disambiguation prefix is inserted.
func (b *RefBuf) SetScheme(scheme string) error {
	if scheme != "" && !isValidRefScheme(scheme) {
		return classify(ErrClassScheme, &kindError{message: "invalid scheme", details: scheme})
	}

	oldEnd := b.positions.SchemeEnd
	var newBytes []byte
	if scheme != "" {
		newBytes = append([]byte(scheme), ':')
	}

	buf, _ := replace(b.buf, byteRange{0, oldEnd}, newBytes)
	if scheme == "" {
		buf = disambiguateRootlessColon(buf)
	}
	return b.commit(buf)
}

// SetAuthority replaces the authority component. Pass nil to remove the
// authority (turning "scheme://host/a" into "scheme:/a"-shaped output);
// pass a non-nil string (without the leading "//") to set or replace it.
// Removing an authority whose path starts with "//" splices in a "/."
// prefix so the result does not re-parse as a network-path reference.
// Adding an authority where there was none guards the opposite ambiguity:
// a rootless path ("mailto:foo") must become path-abempty once there is an
// authority, so a missing leading '/' is inserted rather than letting the
// former path bleed into the new authority on re-parse.
func (b *RefBuf) SetAuthority(authority *string) error {
	hadAuthority := b.positions.AuthorityEnd > b.positions.SchemeEnd
	oldRange := byteRange{b.positions.SchemeEnd, b.positions.AuthorityEnd}

	var newBytes []byte
	if authority != nil {
		newBytes = append([]byte("//"), []byte(*authority)...)
	}

	buf, _ := replace(b.buf, oldRange, newBytes)
	switch {
	case authority == nil && hadAuthority:
		rest := buf[oldRange.Start:]
		if bytes.HasPrefix(rest, []byte("//")) {
			buf = insertAt(buf, oldRange.Start, []byte("/."))
		}
		if b.positions.SchemeEnd == 0 {
			buf = disambiguateRootlessColon(buf)
		}
	case authority != nil && !hadAuthority:
		pathStart := oldRange.Start + len(newBytes)
		if pathStart < len(buf) && buf[pathStart] != '/' {
			buf = insertAt(buf, pathStart, []byte("/"))
		}
	}
	return b.commit(buf)
}

// SetPath replaces the path component in full. If the buffer has an
// authority, a path that does not start with '/' gets a leading "/" so it
// does not run into the authority. If the buffer has no
// authority, a path starting with "//" is disambiguated with a leading
// "/." so it is not mistaken for a network-path reference, and (when there
// is also no scheme) a first segment containing ':' is guarded the same
// way SetScheme("") guards it.
func (b *RefBuf) SetPath(path string) error {
	hasAuthority := b.positions.AuthorityEnd > b.positions.SchemeEnd
	oldRange := byteRange{b.positions.AuthorityEnd, b.positions.PathEnd}

	newPath := []byte(path)
	if !hasAuthority {
		if bytes.HasPrefix(newPath, []byte("//")) {
			newPath = append([]byte("/."), newPath...)
		}
		if b.positions.SchemeEnd == 0 {
			newPath = disambiguateRootlessColon(newPath)
		}
	} else if len(newPath) > 0 && newPath[0] != '/' {
		newPath = append([]byte("/"), newPath...)
	}

	buf, _ := replace(b.buf, oldRange, newPath)
	return b.commit(buf)
}

// SetQuery replaces the query component. Pass nil to remove it (along
// with its leading '?'); pass a non-nil string (without the leading '?')
// to set or replace it.
func (b *RefBuf) SetQuery(query *string) error {
	oldRange := byteRange{b.positions.PathEnd, b.positions.QueryEnd}
	var newBytes []byte
	if query != nil {
		newBytes = append([]byte{'?'}, []byte(*query)...)
	}
	buf, _ := replace(b.buf, oldRange, newBytes)
	return b.commit(buf)
}

// SetFragment replaces the fragment component. Pass nil to remove it
// (along with its leading '#'); pass a non-nil string (without the
// leading '#') to set or replace it.
func (b *RefBuf) SetFragment(fragment *string) error {
	oldRange := byteRange{b.positions.QueryEnd, len(b.buf)}
	var newBytes []byte
	if fragment != nil {
		newBytes = append([]byte{'#'}, []byte(*fragment)...)
	}
	buf, _ := replace(b.buf, oldRange, newBytes)
	return b.commit(buf)
}
