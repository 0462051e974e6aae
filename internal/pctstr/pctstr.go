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

// Package pctstr implements the percent-encoded string view contract used
// to compare opaque IRI/URI components (userinfo, host, query, fragment,
// path segments): two such strings are equal, ordered, and hash alike
// exactly when their percent-decoded octet sequences are, regardless of
// which octets happen to be percent-encoded in either spelling, and
// regardless of the case of the hex digits in a "%XY" triple. It never
// interprets the decoded bytes as a particular text encoding (no UTF-8
// validation, no Unicode normalization) — that is deliberately out of
// scope per the "no percent-decoding in equality" rule for anything beyond
// byte-for-byte octet comparison.
package pctstr

import (
	"bytes"
	"hash/fnv"
)

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// Decode returns the canonical byte representation of a percent-encoded
// string: every well-formed "%XY" triple is replaced by the byte it
// encodes, and every other byte passes through unchanged. A malformed
// trailing "%" or "%X" (not followed by two hex digits) is also passed
// through unchanged, since the grammar validator guarantees this never
// happens for strings that reached the equality/ordering/hashing layer.
func Decode(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			out = append(out, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 3
			continue
		}
		out = append(out, s[i])
		i++
	}
	return out
}

// Equal reports whether a and b denote the same value under percent-
// decoding.
func Equal(a, b string) bool {
	return bytes.Equal(Decode(a), Decode(b))
}

// Compare orders a and b by their decoded byte representation. It returns
// a negative number, zero, or a positive number as bytes.Compare does.
func Compare(a, b string) int {
	return bytes.Compare(Decode(a), Decode(b))
}

// Hash returns an FNV-1a hash of s's decoded form, so that two pct-string
// strings which compare Equal always hash identically.
func Hash(s string) uint64 {
	h := fnv.New64a()
	h.Write(Decode(s))
	return h.Sum64()
}
