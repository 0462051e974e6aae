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
	"bytes"
	"strings"
)

// PathMut is a mutable view over the path component of a RefBuf. It splices
// directly into the owned buffer rather than building a new string. Pop's
// "append a literal '..' instead of silently discarding one with nothing to
// remove" behavior mirrors the RFC Errata 4547 fix that resolvePathErrata
// applies during reference resolution (resolve.go), so that driving
// SymbolicAppend with a relative-path reference produces the same
// above-root-preserving result as Resolve does.
type PathMut struct {
	buf *RefBuf
}

// PathMut returns a mutable view over b's path component.
func (b *RefBuf) PathMut() *PathMut {
	return &PathMut{buf: b}
}

func (m *PathMut) byteRange() byteRange {
	return byteRange{m.buf.positions.AuthorityEnd, m.buf.positions.PathEnd}
}

// disambiguatePath inserts a "/." or "./" guard at the start of the path
// region [authorityEnd, ...) of buf when needed so that a subsequent
// re-parse cannot mistake the new path for a network-path reference (no
// authority, path starting with "//") or for an absolute-URI first segment
// (no scheme, no authority, first segment containing ':').
func disambiguatePath(buf []byte, schemeEnd, authorityEnd int) []byte {
	if authorityEnd > schemeEnd {
		return buf
	}
	rest := buf[authorityEnd:]
	if bytes.HasPrefix(rest, []byte("//")) {
		return insertAt(buf, authorityEnd, []byte("/."))
	}
	if schemeEnd == 0 {
		firstSeg := rest
		if i := bytes.IndexByte(rest, '/'); i >= 0 {
			firstSeg = rest[:i]
		}
		if bytes.IndexByte(firstSeg, ':') >= 0 {
			return insertAt(buf, authorityEnd, []byte("./"))
		}
	}
	return buf
}

func (m *PathMut) commit(buf []byte) error {
	buf = disambiguatePath(buf, m.buf.positions.SchemeEnd, m.buf.positions.AuthorityEnd)
	return m.buf.commit(buf)
}

// Push appends segment as a new, literal path segment, inserting a
// separating '/' if the path is non-empty and doesn't already end in one. An
// empty path with an authority also gets a leading '/', since path-abempty
// requires one; an empty path with no authority pushes the segment bare, so
// it stays a valid rootless path. Unlike SymbolicPush, "." and ".." are
// pushed literally, not interpreted.
func (m *PathMut) Push(segment string) error {
	r := m.byteRange()
	path := m.buf.buf[r.Start:r.End]
	hasAuthority := m.buf.positions.AuthorityEnd > m.buf.positions.SchemeEnd

	var ins []byte
	switch {
	case len(path) > 0 && path[len(path)-1] != '/':
		ins = append(ins, '/')
	case len(path) == 0 && hasAuthority:
		ins = append(ins, '/')
	}
	ins = append(ins, []byte(segment)...)

	buf := insertAt(m.buf.buf, r.End, ins)
	return m.commit(buf)
}

// Pop removes the last path segment. If the path is empty, is bare root
// ("/", with no segment left above it), or already ends in a ".." segment,
// nothing can be removed, so a literal ".." segment is appended instead of
// being discarded — this preserves excess ".." above an absolute root
// rather than silently dropping it.
func (m *PathMut) Pop() error {
	r := m.byteRange()
	path := string(m.buf.buf[r.Start:r.End])

	if path == "" || path == "/" || path == ".." || strings.HasSuffix(path, "/..") {
		return m.Push("..")
	}

	trimmed := strings.TrimSuffix(path, "/")
	var newPath string
	if i := strings.LastIndexByte(trimmed, '/'); i >= 0 {
		newPath = trimmed[:i+1]
	}

	buf := deleteRange(m.buf.buf, r)
	buf = insertAt(buf, r.Start, []byte(newPath))
	return m.commit(buf)
}

// Clear empties the path entirely.
func (m *PathMut) Clear() error {
	buf := deleteRange(m.buf.buf, m.byteRange())
	return m.commit(buf)
}

// SymbolicPush interprets segment as a symbolic path component: "" and "."
// are no-ops, ".." pops the last segment (or preserves itself per Pop's
// Errata 4547 behavior if there is nothing to pop), and anything else is
// pushed literally via Push.
func (m *PathMut) SymbolicPush(segment string) error {
	switch segment {
	case "", ".":
		return nil
	case "..":
		return m.Pop()
	default:
		return m.Push(segment)
	}
}

// SymbolicAppend splits path on '/' and SymbolicPushes each segment in
// turn, applying dot-segment semantics along the way without losing an
// excess ".." that goes above an absolute root (RFC Errata 4547), the same
// guarantee resolvePathErrata gives Resolve's own path merge. Normalize, by
// contrast, uses the root-collapsing removeDotSegments, since that read-only
// transform is not supposed to preserve them.
func (m *PathMut) SymbolicAppend(path string) error {
	if path == "" {
		return nil
	}
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if i == 0 && seg == "" {
			continue
		}
		if err := m.SymbolicPush(seg); err != nil {
			return err
		}
	}
	return nil
}

// Normalize rewrites the path to its dot-segment-free form per RFC 3986,
// Section 5.2.4, without the Errata 4547 carve-out: this mirrors the
// read-only Normalize() semantics (excess ".." above an absolute root is
// dropped, not preserved), exposed here as an in-place mutator.
func (m *PathMut) Normalize() error {
	r := m.byteRange()
	normalized := removeDotSegments(string(m.buf.buf[r.Start:r.End]))

	buf := deleteRange(m.buf.buf, r)
	buf = insertAt(buf, r.Start, []byte(normalized))
	return m.commit(buf)
}
