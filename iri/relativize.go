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
	"strings"

	"github.com/tridentlabs/iriref/internal/pctstr"
)

// segmentEqual compares two raw path segments under the same percent-encoded
// string equality contract (C7) as Suffix and Equal, rather than by raw byte
// spelling. Without this, a base of ".../%7Eabc/x" and a target of
// ".../~abc/y" would fail to share a directory prefix and relativize to a
// needless "../~abc/y" instead of the shorter "y".
func segmentEqual(a, b string) bool {
	return pctstr.Equal(a, b)
}

// commonPrefixLen returns how many leading elements of a and b agree under
// segmentEqual.
func commonPrefixLen(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && segmentEqual(a[n], b[n]) {
		n++
	}
	return n
}

// looksLikeScheme reports whether segment would be misread as a scheme if
// placed at the start of a relative-path reference with no scheme and no
// authority (a ':' before the first '/'). relativizeNoAuthority uses this to
// decide whether the computed relative path needs a "./" disambiguation
// prefix, mirroring the guard RefBuf's own mutators (mutate.go) apply when
// splicing a rootless path back together.
func looksLikeScheme(segment string) bool {
	return strings.IndexByte(segment, ':') >= 0
}

// relativizeWithAuthority is the general case: both the base and the target
// carry an authority, so the relative reference can omit it, and only the
// path needs reducing to the fewest "../" hops plus a descent into the
// target's directory.
func (base *Iri) relativizeWithAuthority(target *Iri) (*Ref, error) {
	basePath := base.Path()
	targetPath := target.Path()
	if basePath == "" {
		basePath = "/"
	}
	if targetPath == "" {
		targetPath = "/"
	}

	// baseDir is the directory basePath resolves relative paths against:
	// basePath itself if it already names a directory, otherwise everything
	// up to (and including) its last '/'.
	baseDir := basePath
	if i := strings.LastIndex(baseDir, "/"); i > -1 {
		baseDir = baseDir[:i+1]
	}

	var baseDirSegs []string
	if baseDir != "/" {
		baseDirSegs = strings.Split(strings.Trim(baseDir, "/"), "/")
	}
	var targetSegs []string
	if targetPath != "/" {
		targetSegs = strings.Split(strings.TrimPrefix(targetPath, "/"), "/")
	}

	common := commonPrefixLen(baseDirSegs, targetSegs)

	var b strings.Builder
	for up := common; up < len(baseDirSegs); up++ {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(targetSegs[common:], "/"))
	relPath := b.String()

	if relPath == "" && strings.HasSuffix(targetPath, "/") {
		// Same directory, but the target names the directory itself rather
		// than a file within it: "." is the shortest reference to it.
		return buildRelativeRef(".", target)
	}
	return buildRelativeRef(relPath, target)
}

// buildRelativeRef appends target's query and fragment (if present) to
// relPath and parses the result as a Ref.
func buildRelativeRef(relPath string, target *Iri) (*Ref, error) {
	var b strings.Builder
	b.WriteString(relPath)
	if query, ok := target.Query(); ok {
		b.WriteByte('?')
		b.WriteString(query)
	}
	if fragment, ok := target.Fragment(); ok {
		b.WriteByte('#')
		b.WriteString(fragment)
	}
	return ParseRef(b.String())
}

// relativizeNoAuthority handles the case where neither base nor target
// carries an authority: the result is a relative-path reference whose first
// segment must be disambiguated with "./" if it would otherwise look like a
// scheme.
func (base *Iri) relativizeNoAuthority(target *Iri) (*Ref, error) {
	basePath := base.Path()
	targetPath := target.Path()

	baseSegs := strings.Split(basePath, "/")
	targetSegs := strings.Split(targetPath, "/")

	// strings.Split never returns an empty slice, so this always drops
	// exactly the last segment: the file name if basePath doesn't end in
	// '/', or the trailing empty segment (itself standing for "nothing
	// past the directory") if it does.
	baseDirSegs := baseSegs[:len(baseSegs)-1]

	common := commonPrefixLen(baseDirSegs, targetSegs)

	var b strings.Builder
	for up := common; up < len(baseDirSegs); up++ {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(targetSegs[common:], "/"))
	relPath := b.String()

	if relPath == "" && basePath != targetPath {
		relPath = "."
	}
	if !strings.HasPrefix(relPath, ".") && !strings.HasPrefix(relPath, "/") {
		firstSeg := relPath
		if i := strings.IndexByte(relPath, '/'); i >= 0 {
			firstSeg = relPath[:i]
		}
		if looksLikeScheme(firstSeg) {
			relPath = "./" + relPath
		}
	}

	return buildRelativeRef(relPath, target)
}

// relativizeSamePathEmptyTargetQuery handles the case where the paths match
// but the base carries a query the target lacks: an empty query ("?") on the
// relative reference would be misread as repeating the base's query once
// resolved, so the path must be re-descended into instead of left bare.
func (base *Iri) relativizeSamePathEmptyTargetQuery(target *Iri) (*Ref, error) {
	if _, hasTargetAuthority := target.Authority(); !hasTargetAuthority {
		// An authority-less target can't be expressed relative to a base
		// that has one; fall back to the full absolute form.
		return ParseRef(target.String())
	}

	if targetPath := target.Path(); targetPath != "" {
		lastSlash := strings.LastIndex(targetPath, "/")
		relPath := targetPath[lastSlash+1:]
		if relPath == "" {
			relPath = "."
		}
		return buildRelativeRef(relPath, target)
	}

	// Empty path with an authority: a scheme-relative reference covers it.
	return ParseRef(target.String()[target.positions.SchemeEnd:])
}

// relativizeSamePath handles the case where base and target paths are
// identical, so only the query/fragment may need to be re-expressed.
func (base *Iri) relativizeSamePath(target *Iri) (*Ref, error) {
	baseQuery, hasBaseQuery := base.Query()
	targetQuery, hasTargetQuery := target.Query()

	if hasBaseQuery == hasTargetQuery && baseQuery == targetQuery {
		if fragment, ok := target.Fragment(); ok {
			return ParseRef("#" + fragment)
		}
		return ParseRef("")
	}

	if !hasTargetQuery && hasBaseQuery {
		return base.relativizeSamePathEmptyTargetQuery(target)
	}

	return ParseRef(target.String()[target.positions.PathEnd:])
}
