// Package fileutils provides common file operations used throughout the application.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return false
	}
	return info != nil && !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		return false
	}
	return info != nil && info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// ListFiles returns the regular files directly inside a directory,
// sorted by name. A missing directory yields an empty list.
func ListFiles(dirPath string) ([]string, error) {
	if !DirectoryExists(dirPath) {
		return nil, nil
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, filepath.Join(dirPath, entry.Name()))
		}
	}
	sort.Strings(files)

	return files, nil
}

// ArchiveFiles moves every file in a directory into its archive/
// subdirectory, creating it if needed.
func ArchiveFiles(dirPath string) error {
	files, err := ListFiles(dirPath)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return nil
	}

	archiveDir := filepath.Join(dirPath, "archive")
	if err := EnsureDirectoryExists(archiveDir); err != nil {
		return err
	}

	for _, file := range files {
		target := filepath.Join(archiveDir, filepath.Base(file))
		if err := os.Rename(file, target); err != nil {
			return fmt.Errorf("failed to archive file %s: %w", filepath.Base(file), err)
		}
		log.WithField("file", file).Debug("Archived file")
	}

	return nil
}

// DeleteFiles removes every regular file directly inside a directory.
func DeleteFiles(dirPath string) error {
	files, err := ListFiles(dirPath)
	if err != nil {
		return err
	}

	for _, file := range files {
		if err := os.Remove(file); err != nil {
			return fmt.Errorf("failed to delete file %s: %w", file, err)
		}
	}

	return nil
}
