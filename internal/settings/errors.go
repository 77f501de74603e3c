package settings

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when the settings file does not exist.
	ErrFileNotFound = errors.New("settings file not found")
	// ErrUnsupportedFormat is returned for file extensions without a decoder.
	ErrUnsupportedFormat = errors.New("unsupported settings file format")
	// ErrParse is returned when the settings file content cannot be decoded.
	ErrParse = errors.New("failed to parse settings file")
)

func fileError(base error, path string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", base, path)
	}
	return fmt.Errorf("%w: %s: %v", base, path, cause)
}
