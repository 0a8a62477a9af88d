package extract

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

// catalogEscapes are JSON unicode escapes left literally in catalog values.
var catalogEscapes = strings.NewReplacer(
	`\u003e`, ">",
	`\u003c`, "<",
	`\u003d`, "=",
	`\u0026`, "&",
	`\u0027`, "'",
)

var leadingBlockCommentRe = regexp.MustCompile(`(?s)^\s*/\*.*?\*/`)

// decodeCatalogSQL normalizes a catalog query value. Only the first leading
// block comment is removed.
func decodeCatalogSQL(raw string) string {
	sql := catalogEscapes.Replace(raw)
	sql = html.UnescapeString(sql)
	sql = strings.TrimSpace(sql)
	sql = leadingBlockCommentRe.ReplaceAllString(sql, "")
	return strings.TrimLeft(sql, " \t\r\n\v\f")
}

// decodeDashboardHref pulls the SQL out of a dashboard panel link. The
// producer encodes the query twice before placing it in the query string.
func decodeDashboardHref(href string) (string, bool) {
	u, err := url.Parse(html.UnescapeString(href))
	if err != nil {
		return "", false
	}
	values, ok := u.Query()["query"]
	if !ok || len(values) == 0 {
		return "", false
	}

	sql := html.UnescapeString(values[0])
	sql = percentDecode(percentDecode(sql))
	sql = strings.TrimSpace(sql)
	return sql, sql != ""
}

// percentDecode decodes %XX escapes and leaves malformed ones untouched.
// A '+' is kept literally.
func percentDecode(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	// Escapes may decode to bytes that are not UTF-8.
	return strings.ToValidUTF8(b.String(), "\uFFFD")
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
