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

import "github.com/tridentlabs/iriref/internal/charclass"

// AuthorityMut is a mutable view over the authority component of a RefBuf,
// splicing the userinfo, host and port sub-fields independently rather
// than requiring the caller to rebuild and re-set the whole authority
// string. If the buffer has no authority at all, these mutators first
// establish an empty one (via RefBuf.SetAuthority) so the edit has a
// region to splice into, mirroring splitAuthority's own userinfo/host/port
// decomposition (authority.go).
type AuthorityMut struct {
	buf *RefBuf
}

// AuthorityMut returns a mutable view over b's authority component,
// creating an empty authority first if b does not already have one.
func (b *RefBuf) AuthorityMut() (*AuthorityMut, error) {
	if b.positions.AuthorityEnd <= b.positions.SchemeEnd {
		empty := ""
		if err := b.SetAuthority(&empty); err != nil {
			return nil, err
		}
	}
	return &AuthorityMut{buf: b}, nil
}

func (m *AuthorityMut) split() (userinfo, host, port string) {
	authority, _ := m.buf.Authority()
	return splitAuthority(authority)
}

func (m *AuthorityMut) recompose(userinfo, host, port string) error {
	var b []byte
	if userinfo != "" {
		b = append(b, userinfo...)
		b = append(b, '@')
	}
	b = append(b, host...)
	if port != "" {
		b = append(b, ':')
		b = append(b, port...)
	}
	authority := string(b)
	return m.buf.SetAuthority(&authority)
}

// SetUserInfo replaces the userinfo sub-field (without the trailing '@').
// An empty string removes it.
func (m *AuthorityMut) SetUserInfo(userinfo string) error {
	if userinfo != "" && !charclass.ValidatePctEncoded(userinfo, charclass.UserInfo()) {
		return classify(ErrClassUserInfo, &kindError{message: "invalid userinfo", details: userinfo})
	}
	_, host, port := m.split()
	return m.recompose(userinfo, host, port)
}

// SetHost replaces the host sub-field, which may be a reg-name, an IPv4
// address, or a bracketed IP-literal/IPvFuture (e.g. "[::1]"). Bracketed
// literals bypass the reg-name fast check here and are instead validated
// by the full re-parse, since validateIPLiteral already covers them.
func (m *AuthorityMut) SetHost(host string) error {
	if host != "" && host[0] != '[' && !charclass.ValidatePctEncoded(host, charclass.UnreservedSubDelims()) {
		return classify(ErrClassHost, &kindError{message: "invalid host", details: host})
	}
	userinfo, _, port := m.split()
	return m.recompose(userinfo, host, port)
}

// SetPort replaces the port sub-field (without the leading ':'). An empty
// string removes it.
func (m *AuthorityMut) SetPort(port string) error {
	for _, r := range port {
		if !isASCIIDigit(r) {
			return classify(ErrClassPort, &kindError{message: "invalid port character", char: r})
		}
	}
	userinfo, host, _ := m.split()
	return m.recompose(userinfo, host, port)
}
