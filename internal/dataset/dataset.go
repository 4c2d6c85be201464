// Package dataset loads the scholarship CSV tables once at startup and keeps
// them read-only for the lifetime of the process.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// ErrUnavailable is returned when a dataset failed to load at startup.
var ErrUnavailable = errors.New("scholarship database not available")

// Row maps a column header to its raw cell value.
type Row map[string]string

// Get returns the trimmed cell value and whether the column exists.
func (r Row) Get(column string) (string, bool) {
	v, ok := r[column]
	return strings.TrimSpace(v), ok
}

type Table struct {
	Columns []string
	Rows    []Row
}

func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len reports the number of rows; a nil table has none.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Datasets is the read-only context handed to the filter handlers.
type Datasets struct {
	Domestic      *Table
	International *Table
}

// DomesticTable returns the domestic table or ErrUnavailable.
func (d *Datasets) DomesticTable() (*Table, error) {
	if d == nil || d.Domestic == nil {
		return nil, ErrUnavailable
	}
	return d.Domestic, nil
}

// InternationalTable returns the international table or ErrUnavailable.
func (d *Datasets) InternationalTable() (*Table, error) {
	if d == nil || d.International == nil {
		return nil, ErrUnavailable
	}
	return d.International, nil
}

// LoadFile reads a CSV file from disk.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return t, nil
}

// Read parses CSV with a mandatory header row. Rows shorter than the header
// are padded with empty cells; extra trailing cells are ignored.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(headers[i], "\ufeff"))
	}

	t := &Table{Columns: headers}
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows)+1, err)
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// LoadAll loads both datasets. A dataset that fails to load is logged and
// left nil so the remaining endpoints keep working.
func LoadAll(log *zap.Logger, domesticPath, internationalPath string) *Datasets {
	ds := &Datasets{}
	var err error
	if ds.Domestic, err = LoadFile(domesticPath); err != nil {
		log.Error("domestic dataset unavailable", zap.String("path", domesticPath), zap.Error(err))
	} else {
		log.Info("loaded domestic dataset", zap.String("path", domesticPath),
			zap.Strings("columns", ds.Domestic.Columns), zap.Int("rows", ds.Domestic.Len()))
	}
	if ds.International, err = LoadFile(internationalPath); err != nil {
		log.Error("international dataset unavailable", zap.String("path", internationalPath), zap.Error(err))
	} else {
		log.Info("loaded international dataset", zap.String("path", internationalPath),
			zap.Strings("columns", ds.International.Columns), zap.Int("rows", ds.International.Len()))
	}
	return ds
}
