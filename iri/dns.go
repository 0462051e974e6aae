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
	"github.com/tridentlabs/iriref/internal/pctstr"
)

const (
	maxDNSHostLength  = 255
	maxDNSLabelLength = 63
)

// dnsValidatedSchemes lists the schemes whose host component this module
// additionally checks against the RFC 1035 domain-name grammar, rather than
// RFC 3986's generic reg-name grammar alone. The registry-backed schemes
// below are the ones whose deployed clients (browsers, mail transfer
// agents, the ftp/ssh/git tooling families) reject a reg-name that isn't
// also a DNS name, so treating a syntactically-valid-but-non-DNS host as an
// error here matches real-world acceptance rather than the bare grammar.
var dnsValidatedSchemes = map[string]bool{
	"http": true, "https": true, "ws": true, "wss": true,
	"ftp": true, "ftps": true, "sftp": true,
	"mailto": true, "imap": true, "smtp": true, "nntp": true,
	"ssh": true, "telnet": true, "git": true, "rsync": true,
	"ldap": true, "nfs": true, "dns": true,
}

// usesDNSHostValidation reports whether scheme's host component should be
// additionally validated against the RFC 1035 domain-name grammar.
func usesDNSHostValidation(scheme string) bool {
	return dnsValidatedSchemes[scheme]
}

// validateDNSHostForScheme checks host (still in its raw, percent-encoded
// spelling) against RFC 1035's <domain> grammar as relaxed by RFC 1123
// §2.1, which lets a label start with a digit (otherwise "1.2.3.4" and any
// domain with a numeric leftmost label would be rejected):
//
//	<domain>   ::= <subdomain> | " "
//	<subdomain> ::= <label> | <subdomain> "." <label>
//	<label>    ::= <let-dig> [ [ <ldh-str> ] <let-dig> ]
//	<ldh-str>  ::= <let-dig-hyp> | <let-dig-hyp> <ldh-str>
//
// A single trailing "." is accepted and stripped before splitting, per the
// FQDN root-label convention ("example.org." names the same host as
// "example.org"); an interior empty label ("a..b") is still rejected.
//
// host is decoded through internal/pctstr.Decode first so a percent-encoded
// "." still acts as a label separator and the 255/63-byte limits apply to
// the octets actually on the wire, matching the equality contract (C7)
// already used for Suffix and Equal rather than a second ad hoc decoder.
func validateDNSHostForScheme(host string) error {
	decoded := pctstr.Decode(host)
	if len(decoded) > maxDNSHostLength {
		return &kindError{message: "DNS host exceeds 255 octets", details: host}
	}
	if len(decoded) == 0 {
		return &kindError{message: "DNS host must not be empty", details: host}
	}
	if decoded[len(decoded)-1] == '.' {
		decoded = decoded[:len(decoded)-1]
	}
	if len(decoded) == 0 {
		return &kindError{message: "DNS host must not be empty", details: host}
	}

	label := decoded
	for {
		sep := -1
		for i, c := range label {
			if c == '.' {
				sep = i
				break
			}
		}
		segment := label
		if sep >= 0 {
			segment = label[:sep]
		}
		if err := validateDNSLabel(segment); err != nil {
			return err
		}
		if sep < 0 {
			return nil
		}
		label = label[sep+1:]
		if len(label) == 0 {
			return &kindError{message: "DNS host must not contain an empty label", details: host}
		}
	}
}

func validateDNSLabel(label []byte) error {
	if len(label) == 0 || len(label) > maxDNSLabelLength {
		return &kindError{message: "DNS label must be 1-63 octets", details: string(label)}
	}
	first := rune(label[0])
	if !isASCIILetter(first) && !isASCIIDigit(first) {
		return &kindError{message: "DNS label must start with a letter or digit", char: first}
	}
	last := rune(label[len(label)-1])
	if !isASCIILetter(last) && !isASCIIDigit(last) {
		return &kindError{message: "DNS label must end with a letter or digit", char: last}
	}
	for _, c := range label[1 : len(label)-1] {
		r := rune(c)
		if !isASCIILetter(r) && !isASCIIDigit(r) && r != '-' {
			return &kindError{message: "DNS label must contain only letters, digits, or '-'", char: r}
		}
	}
	return nil
}
