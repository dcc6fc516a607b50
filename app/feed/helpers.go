package feed

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
	"golang.org/x/text/language"
)

// Schemes whose URLs always have a host and a path.
var specialSchemes = map[string]string{
	"http":  "80",
	"https": "443",
	"ws":    "80",
	"wss":   "443",
	"ftp":   "21",
	"file":  "",
}

// ResolveURL parses raw as an absolute URL and returns its normalized form:
// lower-case scheme and host, punycode for internationalized hosts, no
// default port, and "/" as the path of a bare origin ("https://example.com"
// becomes "https://example.com/").
func ResolveURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", invalidURL(errors.New("empty URL"))
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", invalidURL(err)
	}
	if u.Scheme == "" {
		return "", invalidURL(fmt.Errorf("%q is not absolute", raw))
	}

	u.Scheme = strings.ToLower(u.Scheme)
	defaultPort, special := specialSchemes[u.Scheme]
	if !special {
		return u.String(), nil
	}

	if u.Opaque != "" || (u.Host == "" && u.Scheme != "file") {
		return "", invalidURL(fmt.Errorf("%q has no host", raw))
	}

	host, port := u.Hostname(), u.Port()
	host = strings.ToLower(host)
	if !isASCII(host) {
		if host, err = idna.Lookup.ToASCII(host); err != nil {
			return "", invalidURL(err)
		}
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port != "" && port != defaultPort {
		host = net.JoinHostPort(strings.Trim(host, "[]"), port)
	}
	u.Host = host

	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func invalidURL(cause error) error {
	return &ValidationError{Kind: ErrInvalidURL, Entry: noEntry, Cause: cause}
}

// NormalizeLanguage canonicalizes a BCP 47 tag and drops subtags that are
// implied by the rest of the tag: "nl-NL" becomes "nl" while "en-GB" and
// "zh-TW" are kept. Tags that cannot be parsed are returned trimmed.
func NormalizeLanguage(tag string) string {
	tag = strings.TrimSpace(tag)

	t, err := language.Parse(tag)
	if err != nil {
		slog.Debug("Language tag not normalized", "tag", tag, "error", err)
		return tag
	}
	if t == language.Und {
		return t.String()
	}

	base, _ := t.Base()
	script, _ := t.Script()
	region, _ := t.Region()

	var extra []interface{}
	if variants := t.Variants(); len(variants) > 0 {
		extra = append(extra, variants)
	}
	if extensions := t.Extensions(); len(extensions) > 0 {
		extra = append(extra, extensions)
	}

	candidates := [][]interface{}{
		{base},
		{base, region},
		{base, script},
	}
	for _, parts := range candidates {
		candidate, err := language.Compose(parts...)
		if err != nil {
			continue
		}
		if sameLikelySubtags(candidate, base, script, region) {
			return compose(t, append(parts, extra...))
		}
	}
	return t.String()
}

func sameLikelySubtags(t language.Tag, base language.Base, script language.Script, region language.Region) bool {
	b, _ := t.Base()
	s, _ := t.Script()
	r, _ := t.Region()
	return b == base && s == script && r == region
}

func compose(fallback language.Tag, parts []interface{}) string {
	t, err := language.Compose(parts...)
	if err != nil {
		return fallback.String()
	}
	return t.String()
}
