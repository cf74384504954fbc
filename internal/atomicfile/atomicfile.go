// Package atomicfile provides crash-safe file replacement for every
// specflow mutator. A reader never observes a half-written file because
// the rename is atomic at the filesystem level.
package atomicfile

import (
	"os"
)

// WriteFile writes data to path atomically by writing a temporary file in
// the same directory, fsyncing, and renaming it over the target.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
