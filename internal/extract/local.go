package extract

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/logger"
)

// LocalConfig selects the markdown files and blocks considered by LocalExtractor.
type LocalConfig struct {
	Root          string
	Extensions    []string
	ExcludeSuffix string
	DialectTag    string
	Marker        string
}

// LocalExtractor scans a documentation tree for runnable SQL fences.
type LocalExtractor struct {
	cfg    LocalConfig
	lexer  *fenceLexer
	logger logger.Interface
}

// NewLocalExtractor creates a LocalExtractor.
func NewLocalExtractor(cfg LocalConfig, log logger.Interface) *LocalExtractor {
	return &LocalExtractor{
		cfg:    cfg,
		lexer:  newFenceLexer(cfg.DialectTag, cfg.Marker),
		logger: log.WithComponent("extract.local"),
	}
}

// Name implements Extractor.
func (e *LocalExtractor) Name() string { return SourceLocal }

// Extract walks the tree in lexical order and yields one record per block.
func (e *LocalExtractor) Extract(ctx context.Context) iter.Seq[domain.QueryRecord] {
	return func(yield func(domain.QueryRecord) bool) {
		walkErr := filepath.WalkDir(e.cfg.Root, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				e.logger.Warn("Skipping unreadable path", "path", path, "error", err)
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !e.accepts(path) {
				return nil
			}

			for _, rec := range e.extractFile(path) {
				if !yield(rec) {
					return fs.SkipAll
				}
			}
			return nil
		})
		if walkErr != nil {
			e.logger.Warn("Local extraction stopped", "root", e.cfg.Root, "error", walkErr)
		}
	}
}

func (e *LocalExtractor) accepts(path string) bool {
	if !slices.Contains(e.cfg.Extensions, filepath.Ext(path)) {
		return false
	}
	if e.cfg.ExcludeSuffix != "" && strings.HasSuffix(filepath.ToSlash(path), e.cfg.ExcludeSuffix) {
		return false
	}
	return true
}

func (e *LocalExtractor) extractFile(path string) []domain.QueryRecord {
	data, err := os.ReadFile(path)
	if err != nil {
		e.logger.Warn("Skipping unreadable file", "path", path, "error", err)
		return nil
	}

	text := strings.ToValidUTF8(string(data), "")
	blocks := e.lexer.Lex(text)
	records := make([]domain.QueryRecord, 0, len(blocks))
	for _, b := range blocks {
		records = append(records, domain.QueryRecord{
			Origin: path,
			Title:  b.Title,
			SQL:    b.Body,
		})
	}
	if len(records) > 0 {
		e.logger.Debug("Extracted fenced queries", "path", path, "count", len(records))
	}
	return records
}
