package extract_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/extract"
	"github.com/jonesrussell/queryvalidator/internal/logger"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func localExtractor(root string) *extract.LocalExtractor {
	return extract.NewLocalExtractor(extract.LocalConfig{
		Root:          root,
		Extensions:    []string{".md", ".mdx"},
		ExcludeSuffix: "static/reference-full.md",
		DialectTag:    "questdb-sql",
		Marker:        "demo",
	}, logger.NewNoOp())
}

func TestLocalExtractor_Extract(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "docs/a.md", "# A\n\n```questdb-sql title=\"Revenue by day\" demo\nSELECT 1;\n```\n")
	writeFile(t, root, "docs/b.mdx", "```questdb-sql title=\"Second\" demo\nSELECT 2;\n```\n")
	writeFile(t, root, "docs/notes.txt", "```questdb-sql title=\"Ignored\" demo\nSELECT 3;\n```\n")
	writeFile(t, root, "static/reference-full.md", "```questdb-sql title=\"Aggregated\" demo\nSELECT 4;\n```\n")

	records := slices.Collect(localExtractor(root).Extract(context.Background()))

	assert.Equal(t, []domain.QueryRecord{
		{Origin: filepath.Join(root, "docs/a.md"), Title: "Revenue by day", SQL: "SELECT 1;"},
		{Origin: filepath.Join(root, "docs/b.mdx"), Title: "Second", SQL: "SELECT 2;"},
	}, records)
}

func TestLocalExtractor_MissingRoot(t *testing.T) {
	t.Parallel()

	records := slices.Collect(localExtractor(filepath.Join(t.TempDir(), "missing")).Extract(context.Background()))
	assert.Empty(t, records)
}

func TestLocalExtractor_StopsEarly(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "a.md",
		"```questdb-sql title=\"One\" demo\nSELECT 1;\n```\n```questdb-sql title=\"Two\" demo\nSELECT 2;\n```\n")

	var titles []string
	for rec := range localExtractor(root).Extract(context.Background()) {
		titles = append(titles, rec.Title)
		break
	}
	assert.Equal(t, []string{"One"}, titles)
}

func TestLocalExtractor_CanceledContext(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "a.md", "```questdb-sql title=\"One\" demo\nSELECT 1;\n```\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Empty(t, slices.Collect(localExtractor(root).Extract(ctx)))
}
