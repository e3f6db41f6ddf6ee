package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wardrobe-assistant/wardrobe/internal/domain"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/attribute"
)

const ctxCheckEvery = 1024

func readCSV(ctx context.Context, path string) (table, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return table{}, fmt.Errorf("%w: %w", domain.ErrInvalidCatalog, err)
	}
	defer f.Close()

	return decodeCSV(ctx, f)
}

func decodeCSV(ctx context.Context, r io.Reader) (table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return table{}, fmt.Errorf("%w: read header: %w", domain.ErrInvalidCatalog, err)
	}

	columns, hasColor, err := mapHeader(header)
	if err != nil {
		return table{}, err
	}

	t := table{hasColor: hasColor}
	for line := 2; ; line++ {
		if line%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return table{}, err
			}
		}
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return table{}, fmt.Errorf("%w: line %d: %w", domain.ErrInvalidCatalog, line, err)
		}

		row := make(map[attribute.Name]string, len(columns))
		for i, v := range fields {
			if i < len(columns) && columns[i] != "" {
				row[columns[i]] = v
			}
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// mapHeader resolves header cells to attribute names. Unknown columns map to "".
func mapHeader(header []string) ([]attribute.Name, bool, error) {
	columns := make([]attribute.Name, len(header))
	seen := make(map[attribute.Name]bool)
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		name, ok := attribute.Parse(h)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		columns[i] = name
	}
	if len(seen) == 0 {
		return nil, false, fmt.Errorf("%w: no known columns in header", domain.ErrInvalidCatalog)
	}
	return columns, seen[attribute.Color], nil
}
