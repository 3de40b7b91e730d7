package util

import (
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"strings"

	dsbzip2 "github.com/dsnet/compress/bzip2"
)

// Count-export and model files can be large; both sides of the pipeline
// pick plain, gzip or bzip2 framing from the filename suffix alone.

type wrappedReader struct {
	inner io.Reader
	file  *os.File
}

func (r *wrappedReader) Read(p []byte) (int, error) {
	return r.inner.Read(p)
}

func (r *wrappedReader) Close() error {
	if closer, ok := r.inner.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			r.file.Close()
			return err
		}
	}
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

type wrappedWriter struct {
	inner io.WriteCloser
	file  *os.File
}

func (w *wrappedWriter) Write(p []byte) (int, error) {
	return w.inner.Write(p)
}

func (w *wrappedWriter) Close() error {
	if err := w.inner.Close(); err != nil {
		if w.file != nil {
			w.file.Close()
		}
		return err
	}
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}

// OpenForRead opens filename for reading, decompressing .gz and .bz2
// files by suffix; "-" reads standard input.
func OpenForRead(filename string) (io.ReadCloser, error) {
	if filename == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(filename, ".gz"):
		inner, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, err
		}
		return &wrappedReader{inner, file}, nil
	case strings.HasSuffix(filename, ".bz2"):
		return &wrappedReader{bzip2.NewReader(file), file}, nil
	default:
		return file, nil
	}
}

// OpenForWrite opens filename for writing, compressing .gz and .bz2
// files by suffix; "-" writes standard output.
func OpenForWrite(filename string) (io.WriteCloser, error) {
	if filename == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(filename, ".gz"):
		return &wrappedWriter{gzip.NewWriter(file), file}, nil
	case strings.HasSuffix(filename, ".bz2"):
		inner, err := dsbzip2.NewWriter(file, &dsbzip2.WriterConfig{Level: dsbzip2.DefaultCompression})
		if err != nil {
			file.Close()
			return nil, err
		}
		return &wrappedWriter{inner, file}, nil
	default:
		return file, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
