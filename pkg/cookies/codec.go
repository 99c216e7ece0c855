// Package cookies provides the cookie codec the draft widget collaborates
// with, plus the store seam standing in for a browser's cookie jar.
package cookies

import (
	"net/http"
	"net/url"
	"strings"
)

// Codec translates between the Cookie header format and name/value pairs.
// Escaping and attribute rules are owned entirely by the implementation;
// callers treat both sides as opaque.
type Codec interface {
	// Parse maps a Cookie request header onto name/value pairs. Malformed
	// segments are skipped, matching browser tolerance.
	Parse(header string) map[string]string
	// Serialize renders a single name/value pair as a Set-Cookie string.
	Serialize(name, value string) string
}

// HeaderCodec is the default Codec, built on net/http's cookie machinery.
// Values are percent-encoded so arbitrary text (including newlines) survives
// the round trip. Serialized cookies carry Path=/ and no expiry, leaving them
// session-scoped.
type HeaderCodec struct{}

var _ Codec = HeaderCodec{}

// Parse splits the header on semicolons and decodes each pair individually so
// one malformed segment does not discard the rest.
func (HeaderCodec) Parse(header string) map[string]string {
	pairs := make(map[string]string)
	for _, segment := range strings.Split(header, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		parsed, err := http.ParseCookie(segment)
		if err != nil || len(parsed) == 0 {
			continue
		}
		for _, cookie := range parsed {
			value := cookie.Value
			if decoded, err := url.QueryUnescape(value); err == nil {
				value = decoded
			}
			pairs[cookie.Name] = value
		}
	}
	return pairs
}

// Serialize percent-encodes the value and renders the pair with net/http.
func (HeaderCodec) Serialize(name, value string) string {
	cookie := &http.Cookie{
		Name:  name,
		Value: url.QueryEscape(value),
		Path:  "/",
	}
	return cookie.String()
}
