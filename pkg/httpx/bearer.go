package httpx

import (
	"strings"
	"unicode"
)

// BearerToken pulls the credential out of an Authorization header value. The
// scheme is matched case-insensitively and may be followed by any run of
// whitespace. It returns "" when the header is absent or uses another scheme.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	i := strings.IndexFunc(header, unicode.IsSpace)
	if i < 0 || !strings.EqualFold(header[:i], "bearer") {
		return ""
	}
	return strings.TrimSpace(header[i:])
}
