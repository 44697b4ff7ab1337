package maf

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// File is a Reader over an alignment file on disk. Files ending in ".gz" are
// decompressed transparently.
type File struct {
	*Reader
	path string
	f    *os.File
	gz   *gzip.Reader
}

// Open opens the alignment file at path.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening alignment file: %w", err)
	}

	file := &File{path: path, f: f}
	if err := file.reset(); err != nil {
		f.Close()
		return nil, err
	}
	return file, nil
}

func (f *File) reset() error {
	var r io.Reader = f.f
	if strings.HasSuffix(f.path, ".gz") {
		if f.gz == nil {
			gz, err := gzip.NewReader(f.f)
			if err != nil {
				return fmt.Errorf("%s: %w", f.path, err)
			}
			f.gz = gz
		} else if err := f.gz.Reset(f.f); err != nil {
			return fmt.Errorf("%s: %w", f.path, err)
		}
		r = f.gz
	}

	f.Reader = NewReader(r)
	f.Reader.name = filepath.Base(f.path)
	return nil
}

// Rewind restarts reading from the first record.
func (f *File) Rewind() error {
	if _, err := f.f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding %s: %w", f.path, err)
	}
	return f.reset()
}

// Path returns the path the file was opened with.
func (f *File) Path() string {
	return f.path
}

// Close closes the underlying file.
func (f *File) Close() error {
	if f.gz != nil {
		f.gz.Close()
	}
	return f.f.Close()
}
