package persistence

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/graphattr/attribute"
)

// WriteColumn encodes d and writes it to w.
func WriteColumn(w io.Writer, d attribute.Description, c Compression) error {
	data, err := EncodeColumn(d, c)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadColumn reads a whole column file from r.
func ReadColumn(r io.Reader, opts ...attribute.Option) (attribute.Description, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeColumn(data, opts...)
}

// SaveFile writes d to path atomically: the data goes to a temp file in the
// same directory which then replaces path.
func SaveFile(path string, d attribute.Description, c Compression) error {
	return SaveToFile(path, func(w io.Writer) error {
		return WriteColumn(w, d, c)
	})
}

// LoadFile reads the column stored at path.
func LoadFile(path string, opts ...attribute.Option) (attribute.Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadColumn(bufio.NewReaderSize(f, 256*1024), opts...)
}

// SaveToFile is a helper to save data to a file atomically.
func SaveToFile(filename string, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	_ = tmp.Chmod(0644)

	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	tmpName = ""
	return nil
}
