// Package csvsource reads result records from comma-separated files.
//
// Each row holds exactly four fields: athlete name, event abbreviation, raw
// value and a timestamp in the form "2006-01-02 15:04:05". There is no
// header row. Fields are trimmed and blank lines are skipped.
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/okian/heptathlon/internal/domain/model"
)

// TimestampLayout is the only timestamp format accepted.
const TimestampLayout = "2006-01-02 15:04:05"

const fieldsPerRow = 4

// Reader parses result rows. The zero value is not usable; use NewReader.
type Reader struct {
	location *time.Location
}

// Option applies a configuration option to the Reader.
type Option func(*Reader)

// WithLocation sets the time zone timestamps are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(r *Reader) {
		if loc != nil {
			r.location = loc
		}
	}
}

// NewReader creates a Reader that interprets timestamps in UTC by default.
func NewReader(opts ...Option) *Reader {
	r := &Reader{location: time.UTC}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load opens path and reads every record from it.
func (r *Reader) Load(path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open results file: %w", err)
	}
	defer f.Close()

	return r.Read(f)
}

// Read parses every row of src. It stops at the first malformed row.
func (r *Reader) Read(src io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1 // checked per row for a better error
	cr.TrimLeadingSpace = true

	var records []model.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedRow, err)
		}
		line, _ := cr.FieldPos(0)

		rec, err := r.parseRow(line, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *Reader) parseRow(line int, row []string) (model.Record, error) {
	if len(row) != fieldsPerRow {
		return model.Record{}, &RowError{Line: line, Fields: len(row)}
	}

	raw := strings.TrimSpace(row[3])
	ts, err := time.ParseInLocation(TimestampLayout, raw, r.location)
	if err != nil {
		return model.Record{}, &TimestampParseError{Line: line, Value: raw, Err: err}
	}

	return model.Record{
		Athlete:   strings.TrimSpace(row[0]),
		Event:     strings.TrimSpace(row[1]),
		Value:     strings.TrimSpace(row[2]),
		Timestamp: ts,
	}, nil
}
