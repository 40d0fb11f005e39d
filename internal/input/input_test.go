package input

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	pgnerrors "github.com/lgbarn/pgn-report-go/internal/errors"
	"github.com/lgbarn/pgn-report-go/internal/testutil"
)

const samplePGN = "[Event \"Compressed\"]\n\n1. e4 e5 2. Nf3 *\n"

func writeZstd(t *testing.T, path, content string) {
	t.Helper()
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	testutil.AssertNoError(t, err)
	_, err = enc.Write([]byte(content))
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, enc.Close())
	testutil.AssertNoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

func writeGzip(t *testing.T, path, content string) {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(content))
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, gz.Close())
	testutil.AssertNoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

func TestReadAll(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		file  string
		write func(t *testing.T, path, content string)
	}{
		{
			name: "plain",
			file: "game.pgn",
			write: func(t *testing.T, path, content string) {
				testutil.AssertNoError(t, os.WriteFile(path, []byte(content), 0o600))
			},
		},
		{name: "zstd", file: "game.pgn.zst", write: writeZstd},
		{name: "gzip", file: "game.pgn.gz", write: writeGzip},
		{name: "upper-case extension", file: "GAME.PGN.GZ", write: writeGzip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			tt.write(t, path, samplePGN)

			got, err := ReadAll(path)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, samplePGN)
		})
	}
}

func TestReadAll_Stdin(t *testing.T) {
	orig := stdin
	t.Cleanup(func() { stdin = orig })

	for _, path := range []string{"", "-"} {
		stdin = strings.NewReader(samplePGN)
		got, err := ReadAll(path)
		testutil.AssertNoError(t, err, "path %q", path)
		testutil.AssertEqual(t, got, samplePGN, "path %q", path)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestReadAll_Errors(t *testing.T) {
	dir := t.TempDir()

	corrupt := filepath.Join(dir, "corrupt.pgn.gz")
	testutil.AssertNoError(t, os.WriteFile(corrupt, []byte("not gzip at all"), 0o600))

	truncated := filepath.Join(dir, "truncated.pgn.zst")
	writeZstd(t, truncated, strings.Repeat(samplePGN, 50))
	data, err := os.ReadFile(truncated)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, os.WriteFile(truncated, data[:len(data)/2], 0o600))

	tests := []struct {
		name     string
		path     string
		wantName string
		wantIs   error
	}{
		{
			name:     "missing file",
			path:     filepath.Join(dir, "missing.pgn"),
			wantName: filepath.Join(dir, "missing.pgn"),
			wantIs:   os.ErrNotExist,
		},
		{
			name:     "corrupt gzip header",
			path:     corrupt,
			wantName: corrupt,
		},
		{
			name:     "truncated zstd stream",
			path:     truncated,
			wantName: truncated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadAll(tt.path)
			testutil.AssertErrorIs(t, err, pgnerrors.ErrRead)
			if errors.Is(err, pgnerrors.ErrSyntax) {
				t.Errorf("read failure %v matches ErrSyntax", err)
			}
			var readErr *pgnerrors.ReadError
			if !errors.As(err, &readErr) {
				t.Fatalf("error %T is not a *ReadError", err)
			}
			testutil.AssertEqual(t, readErr.Name, tt.wantName)
			if tt.wantIs != nil {
				testutil.AssertErrorIs(t, err, tt.wantIs)
			}
		})
	}

	t.Run("stdin failure", func(t *testing.T) {
		orig := stdin
		t.Cleanup(func() { stdin = orig })
		stdin = failingReader{}

		_, err := ReadAll("-")
		testutil.AssertErrorIs(t, err, pgnerrors.ErrRead)
		testutil.AssertContains(t, err.Error(), "reading -: broken pipe")
	})
}

func TestOpen_ClosesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.pgn.zst")
	writeZstd(t, path, samplePGN)

	rc, err := Open(path)
	testutil.AssertNoError(t, err)
	data, err := io.ReadAll(rc)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, string(data), samplePGN)
	testutil.AssertNoError(t, rc.Close())
}

func TestIsStdin(t *testing.T) {
	testutil.AssertEqual(t, IsStdin(""), true)
	testutil.AssertEqual(t, IsStdin("-"), true)
	testutil.AssertEqual(t, IsStdin("game.pgn"), false)
}
