package bbm

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteFile encodes m and stores it at path. The model is encoded in memory
// and moved into place with a rename, so path is either fully written or
// left untouched.
func WriteFile(path string, m *Model) error {
	data, err := Marshal(m)
	if err != nil {
		return errors.Wrap(err, "encoding model")
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temporary output")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "writing output")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "closing output")
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "setting output permissions")
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "moving output into place")
	}
	return nil
}
