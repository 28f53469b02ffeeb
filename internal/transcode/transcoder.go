// Package transcode converts rule-statistics CSV exports into the compact
// JSON record array consumed by the rules browser.
package transcode

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/grovetools/core/logging"
	"github.com/grovetools/ruleconv/internal/keymap"
	"github.com/sirupsen/logrus"
)

var (
	// ErrEmptyInput is returned when the input has no header row.
	ErrEmptyInput = errors.New("input has no header row")
	// ErrRaggedRow is returned when a data row and the header differ in length.
	ErrRaggedRow = errors.New("row length does not match header")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Options names the files a Run reads and writes.
type Options struct {
	Input  string
	Output string
}

// Result summarizes a completed Run.
type Result struct {
	Rows    int
	Columns int
	Bytes   int
}

// Transcoder renames and normalizes rows using a key map.
type Transcoder struct {
	keys   *keymap.Map
	logger *logrus.Entry
}

// NewTranscoder creates a transcoder. A nil map uses the built-in table.
func NewTranscoder(keys *keymap.Map) *Transcoder {
	if keys == nil {
		keys = keymap.Default()
	}
	return &Transcoder{
		keys:   keys,
		logger: logging.NewLogger("ruleconv-transcode"),
	}
}

// Run reads opts.Input, transforms every row and replaces opts.Output with
// the encoded collection. Nothing is written unless every step succeeds.
func (t *Transcoder) Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Input == "" {
		return Result{}, errors.New("input path is required")
	}
	if opts.Output == "" {
		return Result{}, errors.New("output path is required")
	}

	in, err := os.Open(opts.Input)
	if err != nil {
		return Result{}, fmt.Errorf("open input %s: %w", opts.Input, err)
	}
	defer in.Close()

	records, header, err := t.readRecords(ctx, in)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", opts.Input, err)
	}

	data, err := Encode(records)
	if err != nil {
		return Result{}, err
	}

	if err := writeFileAtomic(opts.Output, data); err != nil {
		return Result{}, fmt.Errorf("write output %s: %w", opts.Output, err)
	}

	t.logger.WithFields(logrus.Fields{
		"input":   opts.Input,
		"output":  opts.Output,
		"rows":    len(records),
		"columns": len(header),
		"bytes":   len(data),
	}).Debug("Transcoded rule statistics")

	return Result{Rows: len(records), Columns: len(header), Bytes: len(data)}, nil
}

// ReadRecords transforms every data row of r.
func (t *Transcoder) ReadRecords(ctx context.Context, r io.Reader) ([]Record, error) {
	records, _, err := t.readRecords(ctx, r)
	return records, err
}

func (t *Transcoder) readRecords(ctx context.Context, r io.Reader) ([]Record, []string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1 // row length is checked against the header below
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, ErrEmptyInput
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	keys := make([]string, len(header))
	for i, name := range header {
		keys[i] = t.keys.Key(name)
		if keys[i] != name {
			t.logger.WithField("column", name).WithField("alias", keys[i]).Debug("Mapped column")
		}
	}

	records := make([]Record, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		if len(row) != len(header) {
			line, _ := reader.FieldPos(0)
			return nil, nil, fmt.Errorf("line %d: %w (got %d fields, want %d)", line, ErrRaggedRow, len(row), len(header))
		}

		records = append(records, t.transformRow(keys, row))
	}

	return records, header, nil
}

// transformRow builds a Record from row using the precomputed output keys.
func (t *Transcoder) transformRow(keys, row []string) Record {
	rec := newRecord(len(row))
	for i, text := range row {
		rec.set(keys[i], ParseValue(text))
	}
	return rec
}

// writeFileAtomic replaces path with data through a temporary file in the
// same directory, so readers never observe a partial document.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
