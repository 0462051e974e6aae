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

// Equal reports whether a and b denote the same IRI reference. The scheme
// is compared case-insensitively (schemes are ASCII-only per the grammar).
// Within the authority, the userinfo is compared with pctstr.Equal, the
// host case-insensitively on its raw spelling with strings.EqualFold
// (percent-encoded octets in the host are not decoded), and the port
// byte-for-byte. Paths must agree in absoluteness and are then compared
// segment by segment with pctstr.Equal, as are the query and fragment, so
// that, e.g., a path segment spelled "%7Eabc" is equal to one spelled
// "~abc". Presence
// itself matters: a Ref with an empty query ("?" ) is not equal to one
// with no query at all, matching invariant I1 (no two distinct byte
// sequences collapse to indistinguishable values is flipped around here:
// distinguishable presence stays distinguishable under equality too).
func Equal(a, b *Ref) bool {
	aScheme, aHasScheme := a.Scheme()
	bScheme, bHasScheme := b.Scheme()
	if aHasScheme != bHasScheme || !strings.EqualFold(aScheme, bScheme) {
		return false
	}

	aAuth, aHasAuth := a.Authority()
	bAuth, bHasAuth := b.Authority()
	if aHasAuth != bHasAuth {
		return false
	}
	if aHasAuth {
		aUser, aHost, aPort := splitAuthority(aAuth)
		bUser, bHost, bPort := splitAuthority(bAuth)
		if !pctstr.Equal(aUser, bUser) || !strings.EqualFold(aHost, bHost) || aPort != bPort {
			return false
		}
	}

	if !pathEqual(a.Path(), b.Path()) {
		return false
	}

	aQuery, aHasQuery := a.Query()
	bQuery, bHasQuery := b.Query()
	if aHasQuery != bHasQuery || !pctstr.Equal(aQuery, bQuery) {
		return false
	}

	aFrag, aHasFrag := a.Fragment()
	bFrag, bHasFrag := b.Fragment()
	return aHasFrag == bHasFrag && pctstr.Equal(aFrag, bFrag)
}

// pathEqual compares two paths by absoluteness and then segment-by-segment
// using pctstr.Equal, matching the path's own absoluteness-bit-plus-
// segment-count-plus-per-segment-pct-equality contract.
func pathEqual(a, b string) bool {
	if strings.HasPrefix(a, "/") != strings.HasPrefix(b, "/") {
		return false
	}
	aSegs, bSegs := Segments(a), Segments(b)
	if len(aSegs) != len(bSegs) {
		return false
	}
	for i := range aSegs {
		if !pctstr.Equal(aSegs[i], bSegs[i]) {
			return false
		}
	}
	return true
}

// Compare orders Refs for sorting. It compares, in turn, the lowercased
// scheme, the lowercased host, the userinfo (pctstr.Compare), the port
// (bytewise), the path segments (pctstr.Compare, then segment count), the
// query and the fragment (pctstr.Compare), and returns the result of the
// first that differs. Whether a component is present and whether the path
// is absolute are not compared, so Compare can return 0 for Refs that
// Equal reports as different (e.g. "a" and "a?").
func Compare(a, b *Ref) int {
	aScheme, _ := a.Scheme()
	bScheme, _ := b.Scheme()
	if c := strings.Compare(strings.ToLower(aScheme), strings.ToLower(bScheme)); c != 0 {
		return c
	}

	aAuth, _ := a.Authority()
	bAuth, _ := b.Authority()
	aUser, aHost, aPort := splitAuthority(aAuth)
	bUser, bHost, bPort := splitAuthority(bAuth)
	if c := strings.Compare(strings.ToLower(aHost), strings.ToLower(bHost)); c != 0 {
		return c
	}
	if c := pctstr.Compare(aUser, bUser); c != 0 {
		return c
	}
	if c := strings.Compare(aPort, bPort); c != 0 {
		return c
	}

	aSegs, bSegs := Segments(a.Path()), Segments(b.Path())
	for i := 0; i < len(aSegs) && i < len(bSegs); i++ {
		if c := pctstr.Compare(aSegs[i], bSegs[i]); c != 0 {
			return c
		}
	}
	if c := len(aSegs) - len(bSegs); c != 0 {
		if c < 0 {
			return -1
		}
		return 1
	}

	aQuery, _ := a.Query()
	bQuery, _ := b.Query()
	if c := pctstr.Compare(aQuery, bQuery); c != 0 {
		return c
	}

	aFrag, _ := a.Fragment()
	bFrag, _ := b.Fragment()
	return pctstr.Compare(aFrag, bFrag)
}

// Hash returns a hash of r consistent with Equal: two Refs that Equal
// reports equal always produce the same Hash.
func Hash(r *Ref) uint64 {
	const prime = 1099511628211
	h := uint64(14695981039346656037)

	mix := func(v uint64) {
		h ^= v
		h *= prime
	}

	scheme, _ := r.Scheme()
	mix(pctstr.Hash(strings.ToLower(scheme)))

	if authority, ok := r.Authority(); ok {
		userinfo, host, port := splitAuthority(authority)
		mix(pctstr.Hash(userinfo))
		mix(pctstr.Hash(strings.ToLower(host)))
		mix(pctstr.Hash(port))
	}

	for _, seg := range Segments(r.Path()) {
		mix(pctstr.Hash(seg))
	}

	if query, ok := r.Query(); ok {
		mix(pctstr.Hash(query))
	}
	if fragment, ok := r.Fragment(); ok {
		mix(pctstr.Hash(fragment))
	}

	return h
}
