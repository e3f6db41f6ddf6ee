// colorcat classifies the free-text color column of a catalog CSV into color families.
//
// Usage:
//
//	colorcat -in raw.csv -out catalog.csv
//	colorcat -in raw.csv -column "Colour" -reorder=false
//
// With -reorder (default) the output keeps only the canonical catalog columns,
// in canonical order. Otherwise every input column is kept and color_category
// is appended or overwritten in place.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/wardrobe-assistant/wardrobe/internal/domain/attribute"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/color"
	logpkg "github.com/wardrobe-assistant/wardrobe/internal/logger"
)

type config struct {
	in      string
	out     string
	column  string
	reorder bool
	level   string
}

func parseFlags() config {
	cfg := config{}
	flag.StringVar(&cfg.in, "in", "", "input CSV file (required)")
	flag.StringVar(&cfg.out, "out", "", "output CSV file (default: stdout)")
	flag.StringVar(&cfg.column, "column", "color", "name of the raw color column")
	flag.BoolVar(&cfg.reorder, "reorder", true, "keep only canonical columns, in canonical order")
	flag.StringVar(&cfg.level, "log-level", "info", "log level")
	flag.Parse()
	return cfg
}

func main() {
	cfg := parseFlags()

	logger, err := logpkg.NewLogger("local", cfg.level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		cancel()
		logger.Fatal("colorcat failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	if cfg.in == "" {
		return errors.New("-in is required")
	}
	in, err := os.Open(filepath.Clean(cfg.in))
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	var out io.Writer = os.Stdout
	if cfg.out != "" {
		f, err := os.Create(filepath.Clean(cfg.out))
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	stats, err := categorize(ctx, in, out, cfg.column, cfg.reorder)
	if err != nil {
		return err
	}

	fields := []zap.Field{zap.Int("rows", stats.rows)}
	for _, f := range color.Families() {
		if n := stats.families[f]; n > 0 {
			fields = append(fields, zap.Int(f.String(), n))
		}
	}
	logger.Info("Colors categorized", fields...)
	return nil
}

type stats struct {
	rows     int
	families map[color.Family]int
}

// categorize copies CSV from r to w with a color_category column derived from column.
func categorize(ctx context.Context, r io.Reader, w io.Writer, column string, reorder bool) (stats, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return stats{}, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	colorIdx := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), column) {
			colorIdx = i
			break
		}
	}
	if colorIdx < 0 {
		return stats{}, fmt.Errorf("column %q not found", column)
	}

	layout := newLayout(header, reorder)
	cw := csv.NewWriter(w)
	if err := cw.Write(layout.header); err != nil {
		return stats{}, fmt.Errorf("write header: %w", err)
	}

	st := stats{families: make(map[color.Family]int)}
	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return st, fmt.Errorf("row %d: %w", st.rows+2, err)
		}

		var raw *string
		if colorIdx < len(row) && !isNull(row[colorIdx]) {
			raw = &row[colorIdx]
		}
		family := color.ClassifyOptional(raw)
		st.families[family]++
		st.rows++

		if err := cw.Write(layout.row(row, family.String())); err != nil {
			return st, fmt.Errorf("write row %d: %w", st.rows+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return st, fmt.Errorf("flush: %w", err)
	}
	return st, nil
}

// layout maps input columns onto output columns. A source of -1 is the
// color_category value; -2 is an empty cell.
type layout struct {
	header []string
	source []int
}

const (
	srcCategory = -1
	srcEmpty    = -2
)

func newLayout(header []string, reorder bool) layout {
	categoryIdx := -1
	byName := make(map[attribute.Name]int, len(header))
	for i, h := range header {
		name, ok := attribute.Parse(h)
		if !ok {
			continue
		}
		if _, dup := byName[name]; !dup {
			byName[name] = i
		}
		if name == attribute.ColorCategory && categoryIdx < 0 {
			categoryIdx = i
		}
	}

	if !reorder {
		l := layout{header: append([]string(nil), header...), source: make([]int, len(header))}
		for i := range header {
			l.source[i] = i
		}
		if categoryIdx >= 0 {
			l.source[categoryIdx] = srcCategory
		} else {
			l.header = append(l.header, string(attribute.ColorCategory))
			l.source = append(l.source, srcCategory)
		}
		return l
	}

	l := layout{header: make([]string, len(attribute.Columns)), source: make([]int, len(attribute.Columns))}
	for i, name := range attribute.Columns {
		l.header[i] = string(name)
		switch idx, ok := byName[name]; {
		case name == attribute.ColorCategory:
			l.source[i] = srcCategory
		case ok:
			l.source[i] = idx
		default:
			l.source[i] = srcEmpty
		}
	}
	return l
}

func (l layout) row(in []string, category string) []string {
	out := make([]string, len(l.source))
	for i, src := range l.source {
		switch {
		case src == srcCategory:
			out[i] = category
		case src >= 0 && src < len(in):
			out[i] = in[src]
		}
	}
	return out
}

func isNull(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "nan", "null", "none", "<na>":
		return true
	}
	return false
}
