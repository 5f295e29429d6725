package common

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileManager handles file system operations for config, state and report files.
type FileManager struct {
	logger zerolog.Logger
}

// NewFileManager creates a new FileManager instance
func NewFileManager(logger zerolog.Logger) *FileManager {
	return &FileManager{
		logger: logger.With().Str("component", "FileManager").Logger(),
	}
}

// FileExists checks if a path exists and is a regular file
func (fm *FileManager) FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ReadFile reads the entire content of a file
func (fm *FileManager) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapErrorf(err, "failed to read file: %s", path)
	}

	fm.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("File read successfully")
	return data, nil
}

// WriteFile writes data to a file, creating parent directories as needed.
// The target is truncated and overwritten in place.
func (fm *FileManager) WriteFile(path string, data []byte, perm os.FileMode) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return WrapErrorf(err, "failed to create directory: %s", dir)
		}
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return WrapErrorf(err, "failed to open file for writing: %s", path)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fm.logger.Error().Err(closeErr).Str("path", path).Msg("Failed to close file after writing")
		}
	}()

	if _, err := file.Write(data); err != nil {
		return WrapErrorf(err, "failed to write file: %s", path)
	}

	fm.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("File written successfully")
	return nil
}
