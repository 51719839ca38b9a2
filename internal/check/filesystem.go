package check

import (
	"errors"
	"io/fs"
	"os"
)

// FileSystem abstracts file existence checks for deterministic testing.
type FileSystem interface {
	// FileExists reports whether the path names an existing regular file.
	FileExists(filePath string) (bool, error)
}

// OSFileSystem implements FileSystem against the operating system.
type OSFileSystem struct{}

// NewOSFileSystem constructs a FileSystem backed by os.Stat.
func NewOSFileSystem() OSFileSystem {
	return OSFileSystem{}
}

// FileExists reports whether the path names an existing regular file.
func (OSFileSystem) FileExists(filePath string) (bool, error) {
	fileInformation, statError := os.Stat(filePath)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return false, nil
		}
		return false, statError
	}
	return fileInformation.Mode().IsRegular(), nil
}
