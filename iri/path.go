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

// applyDotSegmentRules handles rules 2A-2D of RFC 3986, Section 5.2.4.
// It modifies the input path `in` and output buffer `output` if a rule is matched.
// It returns the modified path, the modified output buffer, and a boolean
// indicating if a rule was successfully applied.
func applyDotSegmentRules(in string, output []string) (string, []string, bool) {
	// Rule 2A: "../" or "./"
	if strings.HasPrefix(in, "../") {
		return in[3:], output, true
	}
	if strings.HasPrefix(in, "./") {
		return in[2:], output, true
	}
	// Rule 2B: "/./" or "/."
	if strings.HasPrefix(in, "/./") {
		return "/" + in[3:], output, true
	}
	if in == "/." {
		return "/", output, true
	}
	// Rule 2C: "/../" or "/.."
	if strings.HasPrefix(in, "/../") || in == "/.." {
		newIn := "/"
		if len(in) > len("/..") { // Distinguishes "/../" from "/.."
			newIn += in[4:]
		}
		if len(output) > 0 {
			lastSegment := output[len(output)-1]
			output = output[:len(output)-1]

			if len(output) == 0 && !strings.HasPrefix(lastSegment, "/") {
				newIn = strings.TrimPrefix(newIn, "/")
			}
		}
		return newIn, output, true
	}
	// Rule 2D: "." or ".."
	if in == "." || in == ".." {
		return "", output, true
	}
	// No rule applied
	return in, output, false
}

// extractFirstSegment handles rule 2E of RFC 3986, Section 5.2.4.
// It extracts the first path segment from the input buffer `in` and returns
// that segment along with the remainder of the input buffer.
func extractFirstSegment(in string) (string, string) {
	slashIndex := strings.Index(in, "/")
	if slashIndex == 0 { // Path starts with a slash, e.g., "/a/b"
		nextSlash := strings.Index(in[1:], "/")
		if nextSlash == -1 {
			return in, ""
		}
		// The segment includes the slash
		return in[:nextSlash+1], in[nextSlash+1:]
	}

	// Path does not start with a slash, e.g., "a/b"
	if slashIndex == -1 {
		return in, ""
	}
	// The segment is up to the slash
	return in[:slashIndex], in[slashIndex:]
}

// removeDotSegments implements the "Remove Dot Segments" algorithm from
// RFC 3986, Section 5.2.4. It normalizes a path by resolving "." and ".." segments.
func removeDotSegments(input string) string {
	var output []string
	in := input

	for len(in) > 0 {
		var ruleApplied bool
		in, output, ruleApplied = applyDotSegmentRules(in, output)
		if ruleApplied {
			continue
		}

		// Rule 2E: No special rule applied, so move the first path segment
		// from the input buffer to the end of the output buffer.
		var segment, remainder string
		segment, remainder = extractFirstSegment(in)
		in = remainder
		output = append(output, segment)
	}

	return strings.Join(output, "")
}

// resolvePath resolves a relative path against a base path according to
// RFC 3986, Section 5.2.2. It merges the base path with the relative
// reference path.
func resolvePath(basePath, relPath string) string {
	lastSlash := strings.LastIndex(basePath, "/")
	if lastSlash == -1 {
		return removeDotSegments(relPath)
	}
	return removeDotSegments(basePath[:lastSlash+1] + relPath)
}

// removeDotSegmentsErrata implements the "Remove Dot Segments" algorithm of
// RFC 3986, Section 5.2.4, as corrected by RFC Errata ID 4547: a ".."
// segment that has no preceding segment to remove above an absolute path's
// root is kept in the output literally instead of being silently dropped.
// Reference resolution (resolve.go) uses this variant for every dot-segment
// removal it performs; plain syntax-based normalization keeps the original,
// root-collapsing behavior of removeDotSegments.
func removeDotSegmentsErrata(input string) string {
	var output []string
	in := input

	for len(in) > 0 {
		switch {
		case strings.HasPrefix(in, "../"):
			in = in[3:]
			continue
		case strings.HasPrefix(in, "./"):
			in = in[2:]
			continue
		case strings.HasPrefix(in, "/./"):
			in = "/" + in[3:]
			continue
		case in == "/.":
			in = "/"
			continue
		case strings.HasPrefix(in, "/../"), in == "/..":
			rest := ""
			if len(in) > len("/..") {
				rest = in[4:]
			}
			if len(output) > 0 && output[len(output)-1] != "/.." {
				output = output[:len(output)-1]
			} else {
				output = append(output, "/..")
			}
			in = "/" + rest
			continue
		case in == ".", in == "..":
			in = ""
			continue
		}

		segment, remainder := extractFirstSegment(in)
		in = remainder
		output = append(output, segment)
	}

	return strings.Join(output, "")
}

// resolvePathErrata is the Errata-4547-aware counterpart of resolvePath,
// used when merging a relative-path reference onto a base path during
// reference resolution.
func resolvePathErrata(basePath, relPath string) string {
	lastSlash := strings.LastIndex(basePath, "/")
	if lastSlash == -1 {
		return removeDotSegmentsErrata(relPath)
	}
	return removeDotSegmentsErrata(basePath[:lastSlash+1] + relPath)
}

// Segments splits path into its '/'-separated segments, preserving empty
// segments exactly as they appear (so "a//b" yields three segments: "a",
// "", "b"). A leading '/' does not itself produce a leading empty
// segment: "/a/b" yields "a", "b", matching the segment-vs-absoluteness
// split used throughout this package (IsAbsolute/Path already carry the
// leading '/' separately from segment content).
func Segments(path string) []string {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// NormalizedSegments returns path's segments after RFC 3986, Section 5.2.4
// dot-segment removal (the same root-collapsing algorithm as
// removeDotSegments, returned as a segment slice instead of a joined
// string). Unlike the Errata-4547-aware merge Resolve performs, this is
// the plain read-only view: a ".." above an absolute root is dropped, not
// preserved.
func NormalizedSegments(path string) []string {
	normalized := removeDotSegments(path)
	return Segments(normalized)
}

// Parent returns the path with its final segment removed, along with
// whether a segment was actually present to remove. A path of "//foo"
// (absolute, with a leading empty segment) is a special case: its parent
// is the literal string "/./", not "/", to avoid that empty segment being
// mistaken for the path/authority boundary once recomposed.
func Parent(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	if strings.HasPrefix(path, "//") {
		return "/./", true
	}

	trimmed := strings.TrimSuffix(path, "/")
	i := strings.LastIndexByte(trimmed, '/')
	if i < 0 {
		if strings.HasPrefix(path, "/") {
			return "/", true
		}
		return "", true
	}
	return trimmed[:i+1], true
}

// Directory returns the path's parent, or path itself if it has no parent
// segment to remove (e.g. path is already empty or a bare "/").
func Directory(path string) string {
	if parent, ok := Parent(path); ok {
		return parent
	}
	return path
}

// Suffix returns the remainder of path after stripping the common
// normalized-segment prefix it shares with prefix, along with whether
// prefix was actually a prefix of path. Segment comparison uses the
// percent-encoded string equality contract (internal/pctstr), so
// "%61" and "a" are considered the same segment.
func Suffix(path, prefix string) (string, bool) {
	pathSegs := NormalizedSegments(path)
	prefixSegs := NormalizedSegments(prefix)

	if len(prefixSegs) > len(pathSegs) {
		return "", false
	}
	for i, seg := range prefixSegs {
		if !pctstr.Equal(seg, pathSegs[i]) {
			return "", false
		}
	}
	return strings.Join(pathSegs[len(prefixSegs):], "/"), true
}
