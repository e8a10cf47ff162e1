package trace

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ZstdSuffix marks trace files that are written zstd-compressed.
const ZstdSuffix = ".zst"

// JSONLRecorder writes one JSON object per record, one per line, optionally
// zstd-compressed. Record has no error return: the first write error is
// retained, later records are dropped, and the error is reported by Close.
type JSONLRecorder struct {
	f   io.Closer // non-nil when the recorder owns the underlying file
	enc *zstd.Encoder
	w   *bufio.Writer
	err error
	n   int
}

// NewJSONLRecorder wraps dst. When compress is true the stream is zstd-encoded.
// Closing the recorder flushes but does not close dst.
func NewJSONLRecorder(dst io.Writer, compress bool) (*JSONLRecorder, error) {
	r := &JSONLRecorder{}
	if compress {
		// Single-threaded encoding keeps the compressed stream reproducible.
		enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedFastest), zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("creating zstd encoder: %w", err)
		}
		r.enc = enc
		r.w = bufio.NewWriterSize(enc, 128*1024)
		return r, nil
	}
	r.w = bufio.NewWriterSize(dst, 128*1024)
	return r, nil
}

// CreateJSONL creates (or truncates) the file at path and returns a recorder
// writing to it. Paths ending in ".zst" are zstd-compressed.
func CreateJSONL(path string) (*JSONLRecorder, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating trace directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating trace file: %w", err)
	}
	r, err := NewJSONLRecorder(f, strings.HasSuffix(path, ZstdSuffix))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.f = f
	return r, nil
}

// Record appends rec as a single JSON line.
func (r *JSONLRecorder) Record(rec Record) {
	if r.err != nil {
		return
	}
	b, err := json.Marshal(rec)
	if err != nil {
		r.err = err
		return
	}
	if _, err := r.w.Write(b); err != nil {
		r.err = err
		return
	}
	if err := r.w.WriteByte('\n'); err != nil {
		r.err = err
		return
	}
	r.n++
}

// Count returns the number of records written successfully.
func (r *JSONLRecorder) Count() int { return r.n }

// Close flushes buffered output, finishes the zstd frame and closes the
// underlying file if the recorder opened it. It returns the first error
// seen while recording or closing.
func (r *JSONLRecorder) Close() error {
	errs := []error{r.err}
	if r.w != nil {
		errs = append(errs, r.w.Flush())
		r.w = nil
	}
	if r.enc != nil {
		errs = append(errs, r.enc.Close())
		r.enc = nil
	}
	if r.f != nil {
		errs = append(errs, r.f.Close())
		r.f = nil
	}
	return errors.Join(errs...)
}

// ReadJSONL decodes every record from src. When compressed is true the
// stream is zstd-decoded first.
func ReadJSONL(src io.Reader, compressed bool) ([]Record, error) {
	if compressed {
		dec, err := zstd.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer dec.Close()
		src = dec
	}
	var records []Record
	d := json.NewDecoder(src)
	for {
		var rec Record
		if err := d.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			return records, fmt.Errorf("decoding record %d: %w", len(records), err)
		}
		records = append(records, rec)
	}
}

// OpenJSONL reads every record from the trace file at path.
func OpenJSONL(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadJSONL(f, strings.HasSuffix(path, ZstdSuffix))
}
