package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/wardrobe-assistant/wardrobe/internal/domain"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/attribute"
)

const parquetBatch = 1000

func readParquet(ctx context.Context, path string) (table, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return table{}, fmt.Errorf("%w: %w", domain.ErrInvalidCatalog, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return table{}, fmt.Errorf("stat: %w", err)
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return table{}, fmt.Errorf("%w: open parquet: %w", domain.ErrInvalidCatalog, err)
	}

	t := table{hasColor: hasColumn(pf, string(attribute.Color))}

	r := parquet.NewGenericReader[parquetRow](f)
	defer r.Close()

	buf := make([]parquetRow, parquetBatch)
	for {
		if err := ctx.Err(); err != nil {
			return table{}, err
		}
		n, readErr := r.Read(buf)
		for i := 0; i < n; i++ {
			t.rows = append(t.rows, buf[i].toMap())
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return table{}, fmt.Errorf("%w: read rows: %w", domain.ErrInvalidCatalog, readErr)
		}
	}
	return t, nil
}

func hasColumn(pf *parquet.File, name string) bool {
	for _, path := range pf.Schema().Columns() {
		if len(path) > 0 && path[0] == name {
			return true
		}
	}
	return false
}
