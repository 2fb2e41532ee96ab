// Package telemetry records per-generation statistics and summarizes runs.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
)

// Record is one row of generation telemetry.
type Record struct {
	Seed       int64 `csv:"seed"`
	Generation int   `csv:"generation"`
	Population int   `csv:"population"`
	Births     int   `csv:"births"`
	Deaths     int   `csv:"deaths"`
}

// Recorder appends Records to a CSV stream. A nil Recorder discards writes,
// so callers can leave telemetry disabled without branching.
type Recorder struct {
	mu            sync.Mutex
	w             io.Writer
	closer        io.Closer
	headerWritten bool
}

// NewRecorder writes CSV rows to w.
func NewRecorder(w io.Writer) *Recorder {
	r := &Recorder{w: w}
	if c, ok := w.(io.Closer); ok {
		r.closer = c
	}
	return r
}

// Create opens path for writing, creating parent directories. An empty path
// returns a nil Recorder.
func Create(path string) (*Recorder, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating telemetry directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	return NewRecorder(f), nil
}

// Write appends records; the header is emitted with the first batch.
func (r *Recorder) Write(records ...Record) error {
	if r == nil || len(records) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.w); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.w); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// Close releases the underlying file, if any.
func (r *Recorder) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// ReadRecords parses a CSV stream produced by a Recorder.
func ReadRecords(rd io.Reader) ([]Record, error) {
	var out []Record
	if err := gocsv.Unmarshal(rd, &out); err != nil {
		return nil, fmt.Errorf("reading telemetry: %w", err)
	}
	return out, nil
}
