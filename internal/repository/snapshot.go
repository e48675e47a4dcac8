package repository

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// writeSnapshot serializes v into path as one gob blob, replacing whatever
// was there. The write goes to a temp file first and is renamed into place
// so a crash mid-save never leaves a torn snapshot behind.
func writeSnapshot(path string, v any) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding snapshot %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing snapshot %s: %w", path, err)
	}
	return nil
}

// errEmptySnapshot reports a snapshot that is absent or zero bytes. Callers
// treat it as an empty collection without complaint; anything else is a
// corrupt file worth logging.
var errEmptySnapshot = errors.New("snapshot empty or missing")

// readSnapshot decodes the gob blob at path into v.
func readSnapshot(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errEmptySnapshot
		}
		return fmt.Errorf("opening snapshot %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptySnapshot
		}
		return fmt.Errorf("decoding snapshot %s: %w", path, err)
	}
	return nil
}
