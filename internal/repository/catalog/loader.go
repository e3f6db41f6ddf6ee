package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wardrobe-assistant/wardrobe/internal/domain"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/attribute"
	domcat "github.com/wardrobe-assistant/wardrobe/internal/domain/catalog"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/color"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/record"
)

// Format is a catalog file format.
type Format string

// Supported formats. FormatAuto picks by file extension.
const (
	FormatAuto    Format = "auto"
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// IsValid reports whether f is a supported format.
func (f Format) IsValid() bool {
	return f == "" || f == FormatAuto || f == FormatCSV || f == FormatParquet
}

// table is the raw content of one catalog file.
type table struct {
	rows []map[attribute.Name]string
	// hasColor is set when the file carries a raw color column.
	hasColor bool
}

// Loader reads catalog files into items.
type Loader struct {
	patterns []string
	format   Format
	logger   *zap.Logger
}

// NewLoader creates a loader over file paths or glob patterns.
func NewLoader(patterns []string, format Format, logger *zap.Logger) *Loader {
	if format == "" {
		format = FormatAuto
	}
	return &Loader{patterns: patterns, format: format, logger: logger}
}

// Load reads every matching file concurrently and returns the items in path order.
// Raw color text is classified into color_category; when a file has no raw
// color column its color_category column is used as is.
func (l *Loader) Load(ctx context.Context) ([]domcat.Item, error) {
	paths, err := l.expand()
	if err != nil {
		return nil, err
	}

	tables := make([]table, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			t, err := l.read(gctx, path)
			if err != nil {
				return fmt.Errorf("read %s: %w", filepath.Base(path), err)
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var items []domcat.Item
	for i, t := range tables {
		for _, row := range t.rows {
			items = append(items, domcat.New(len(items), toRecord(row, t.hasColor)))
		}
		l.logger.Info("Catalog file loaded",
			zap.String("path", paths[i]),
			zap.Int("rows", len(t.rows)),
			zap.Bool("classified_colors", t.hasColor),
		)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no rows in %v", domain.ErrInvalidCatalog, paths)
	}
	return items, nil
}

func (l *Loader) expand() ([]string, error) {
	var paths []string
	for _, p := range l.patterns {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("%w: bad pattern %q: %w", domain.ErrInvalidCatalog, p, err)
		}
		slices.Sort(matches)
		for _, m := range matches {
			if !slices.Contains(paths, m) {
				paths = append(paths, m)
			}
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no files match %v", domain.ErrInvalidCatalog, l.patterns)
	}
	return paths, nil
}

func (l *Loader) read(ctx context.Context, path string) (table, error) {
	format := l.format
	if format == FormatAuto {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".parquet", ".pq":
			format = FormatParquet
		default:
			format = FormatCSV
		}
	}

	switch format {
	case FormatParquet:
		return readParquet(ctx, path)
	case FormatCSV:
		return readCSV(ctx, path)
	default:
		return table{}, fmt.Errorf("%w: unsupported format %q", domain.ErrInvalidCatalog, format)
	}
}

func toRecord(row map[attribute.Name]string, hasColor bool) record.Record {
	rec := record.New(row)
	if !hasColor {
		return rec
	}
	var raw *string
	if v, ok := rec.Get(attribute.Color); ok {
		raw = &v
	}
	return rec.With(attribute.ColorCategory, color.ClassifyOptional(raw).String())
}
