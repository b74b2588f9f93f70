// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// GzipExtension marks output paths that are written gzip-compressed.
const GzipExtension = ".gz"

// OpenRegular opens path for reading and rejects directories and other
// non-regular files. A missing path returns an error satisfying
// errors.Is(err, fs.ErrNotExist).
func OpenRegular(path string) (*os.File, error) {
	if path == "" {
		panic("path must not be empty")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	return f, nil
}

// CreateOutput creates or truncates path and returns a writer for it. Paths
// ending in GzipExtension are compressed transparently. Closing the returned
// writer flushes the compressor and closes the file.
func CreateOutput(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, GzipExtension) {
		return f, nil
	}
	return &gzipFile{Writer: gzip.NewWriter(f), file: f}, nil
}

type gzipFile struct {
	*gzip.Writer
	file *os.File
}

func (g *gzipFile) Close() error {
	if err := g.Writer.Close(); err != nil {
		g.file.Close()
		return err
	}
	return g.file.Close()
}
