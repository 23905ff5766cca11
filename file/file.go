package file

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// PathExists checks if a path exists.
func PathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, "failed to stat %s", path)
}

// CreateDir creates the directory (and parents) if it does not exist.
func CreateDir(path string) error {
	exists, err := PathExists(path)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", path)
	}
	return nil
}

// WriteFile writes content to filePath, creating the parent directory when
// needed.
func WriteFile(filePath string, content []byte) error {
	if err := CreateDir(filepath.Dir(filePath)); err != nil {
		return err
	}
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return errors.Wrapf(err, "failed to write file %s", filePath)
	}
	return nil
}
