package util

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// ReadTrimmedFile reads a (sysfs) file and strips surrounding whitespace
func ReadTrimmedFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// ExpandHomePath resolves a leading "~" to the home directory of the current user
func ExpandHomePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	currentUser, err := user.Current()
	if err != nil {
		return path, err
	}
	return filepath.Join(currentUser.HomeDir, path[1:]), nil
}
