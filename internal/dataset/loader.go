package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

var (
	ErrDataNotFound = errors.New("data file not found")
	ErrEmptyDataset = errors.New("dataset is empty")
)

// SchemaError reports a header or cell that the loader cannot use.
type SchemaError struct {
	Column string
	Line   int
	Value  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("column %q line %d: %s (value %q)", e.Column, e.Line, e.Reason, e.Value)
	}
	return fmt.Sprintf("column %q: %s", e.Column, e.Reason)
}

// Load reads and normalizes the rentals file at path.
func Load(ctx context.Context, path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataNotFound, path)
		}
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return Read(ctx, file)
}

// Read parses CSV content into a normalized Dataset.
func Read(ctx context.Context, r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// header only counts as empty
	if len(records) <= 1 {
		return nil, ErrEmptyDataset
	}
	records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("load records: %w", df.Err)
	}

	return Normalize(df)
}
