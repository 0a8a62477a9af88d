package extract

import (
	"net/url"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestDecodeCatalogSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"leading block comment stripped", "/* demo */\nSELECT now();", "SELECT now();"},
		{"only the first comment is stripped", "/* a */ /* b */ SELECT 1;", "/* b */ SELECT 1;"},
		{"multi line comment", "  /* line one\nline two */\n\nSELECT 2;", "SELECT 2;"},
		{"literal escapes", "SELECT a \\u003e 1 AND b \\u003c 2 AND c \\u003d 3 AND d \\u0026 e = \\u0027x\\u0027;",
			"SELECT a > 1 AND b < 2 AND c = 3 AND d & e = 'x';"},
		{"html entities", "SELECT * FROM t WHERE a &gt; 1 AND s = &#39;x&#39;;", "SELECT * FROM t WHERE a > 1 AND s = 'x';"},
		{"comment only", "/* nothing */", ""},
		{"trailing comment kept", "SELECT 1; /* tail */", "SELECT 1; /* tail */"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, decodeCatalogSQL(tt.raw))
		})
	}
}

// dashboardHref builds a panel link the way the dashboard producer does:
// the SQL is percent-encoded twice and then placed in a query string.
func dashboardHref(sql string) string {
	encoded := url.PathEscape(url.PathEscape(sql))
	return "https://demo.questdb.io?" + url.Values{"query": {encoded}, "executeQuery": {"true"}}.Encode()
}

func TestDecodeDashboardHref(t *testing.T) {
	t.Parallel()

	sql, ok := decodeDashboardHref(dashboardHref("SELECT 1;"))
	assert.True(t, ok)
	assert.Equal(t, "SELECT 1;", sql)

	sql, ok = decodeDashboardHref(dashboardHref("SELECT * FROM fx WHERE symbol LIKE 'EUR%' LIMIT 10;"))
	assert.True(t, ok)
	assert.Equal(t, "SELECT * FROM fx WHERE symbol LIKE 'EUR%' LIMIT 10;", sql)
}

func TestDecodeDashboardHref_HTMLEscapedAmpersand(t *testing.T) {
	t.Parallel()

	sql, ok := decodeDashboardHref("https://demo.questdb.io?executeQuery=true&amp;query=SELECT%2525201%25253B")
	assert.True(t, ok)
	assert.Equal(t, "SELECT 1;", sql)
}

func TestDecodeDashboardHref_NoQuery(t *testing.T) {
	t.Parallel()

	_, ok := decodeDashboardHref("https://demo.questdb.io?executeQuery=true")
	assert.False(t, ok)

	_, ok = decodeDashboardHref("https://demo.questdb.io?query=%252520")
	assert.False(t, ok)
}

func TestPercentDecode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "SELECT 1;", percentDecode("SELECT%201%3B"))
	assert.Equal(t, "a+b", percentDecode("a+b"))
	assert.Equal(t, "100% done", percentDecode("100% done"))
	assert.Equal(t, "bad %zz escape", percentDecode("bad %zz escape"))
	assert.Equal(t, "tail %4", percentDecode("tail %4"))
	assert.Equal(t, "caf\u00e9", percentDecode("caf%C3%A9"))
	assert.Equal(t, "x\uFFFDy", percentDecode("x%FFy"))
	assert.True(t, utf8.ValidString(percentDecode("%FF%FE")))
}

func TestPercentDecode_Idempotent(t *testing.T) {
	t.Parallel()

	once := percentDecode("SELECT%20*%20FROM%20trades%3B")
	assert.Equal(t, "SELECT * FROM trades;", once)
	assert.Equal(t, once, percentDecode(once))
}
