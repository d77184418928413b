package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", dirPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dirPath)
	}
	return nil
}

// AbsDir returns dirPath as an absolute, cleaned path
func AbsDir(dirPath string) (string, error) {
	if dirPath == "" {
		return "", fmt.Errorf("directory path is empty")
	}
	abs, err := filepath.Abs(dirPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return abs, nil
}

// ResolveExecutable finds name on the search path, paths with a separator are checked as is
func ResolveExecutable(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("executable name is empty")
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("downloader %q not found: %w", name, err)
	}
	return path, nil
}
