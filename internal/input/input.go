// Package input opens PGN sources, decompressing them by file extension.
package input

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/lgbarn/pgn-report-go/internal/errors"
)

// StdinName is the path that selects standard input.
const StdinName = "-"

// stdin is read for StdinName and the empty path.
var stdin io.Reader = os.Stdin

// decompressor wraps a compressed stream.
type decompressor func(r io.Reader) (io.ReadCloser, error)

func zstdReader(r io.Reader) (io.ReadCloser, error) {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return decoder.IOReadCloser(), nil
}

func gzipReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

// decompressors is keyed by lower-case file extension.
var decompressors = map[string]decompressor{
	".zst": zstdReader,
	".gz":  gzipReader,
}

// readCloser closes the decompressor before the file under it.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc *readCloser) Close() error {
	var first error
	for _, c := range rc.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// IsStdin reports whether path selects standard input.
func IsStdin(path string) bool {
	return path == "" || path == StdinName
}

// Open opens path for reading. The empty path and "-" read standard input;
// files ending in .zst or .gz are decompressed transparently.
func Open(path string) (io.ReadCloser, error) {
	if IsStdin(path) {
		return io.NopCloser(stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &errors.ReadError{Name: path, Err: err}
	}

	wrap, ok := decompressors[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return f, nil
	}
	dr, err := wrap(f)
	if err != nil {
		f.Close()
		return nil, &errors.ReadError{Name: path, Err: err}
	}
	return &readCloser{Reader: dr, closers: []io.Closer{dr, f}}, nil
}

// ReadAll returns the whole decompressed contents of path.
// Failures are reported as *errors.ReadError.
func ReadAll(path string) (string, error) {
	rc, err := Open(path)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", &errors.ReadError{Name: path, Err: err}
	}
	return string(data), nil
}
