// Package attr provides byte level access to device attributes,
// usually files below /sys or device nodes below /dev.
package attr

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Attribute is a single readable and/or writable device attribute.
type Attribute interface {
	// Name returns the attribute name, e.g. "gpu_mux_mode"
	Name() string
	Read() ([]byte, error)
	Write(data []byte) error
	// Exists indicates whether the attribute is present on this machine
	Exists() bool
}

// FileAttribute is an Attribute backed by a file path
type FileAttribute struct {
	Path string
}

func NewFileAttribute(dir string, name string) *FileAttribute {
	return &FileAttribute{Path: filepath.Join(dir, name)}
}

func (a *FileAttribute) Name() string {
	return filepath.Base(a.Path)
}

func (a *FileAttribute) Read() ([]byte, error) {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", a.Path, err)
	}
	return data, nil
}

// Write opens the existing attribute and writes data in a single call.
// Sysfs attributes must never be created, so O_CREATE is not used.
func (a *FileAttribute) Write(data []byte) error {
	file, err := os.OpenFile(a.Path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return fmt.Errorf("write %s: %w", a.Path, err)
	}
	_, err = file.Write(data)
	closeErr := file.Close()
	if err != nil {
		return fmt.Errorf("write %s: %w", a.Path, err)
	}
	if closeErr != nil {
		return fmt.Errorf("write %s: %w", a.Path, closeErr)
	}
	return nil
}

func (a *FileAttribute) Exists() bool {
	_, err := os.Stat(a.Path)
	return err == nil
}

// ReadU8 reads the attribute as a single unsigned decimal value ("1\n" -> 1)
func ReadU8(a Attribute) (uint8, error) {
	data, err := a.Read()
	if err != nil {
		return 0, err
	}
	text := strings.TrimSpace(string(data))
	value, err := strconv.ParseUint(text, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("parse %s value %q: %w", a.Name(), text, err)
	}
	return uint8(value), nil
}

// WriteU8 writes a single unsigned decimal value
func WriteU8(a Attribute, value uint8) error {
	return a.Write([]byte(strconv.Itoa(int(value))))
}

// ReadByte returns the first non-whitespace byte of the attribute ("1\n" -> '1')
func ReadByte(a Attribute) (byte, error) {
	data, err := a.Read()
	if err != nil {
		return 0, err
	}
	text := strings.TrimSpace(string(data))
	if len(text) == 0 {
		return 0, fmt.Errorf("attribute %s is empty", a.Name())
	}
	return text[0], nil
}

// ReadBool interprets "1" as true and "0" as false
func ReadBool(a Attribute) (bool, error) {
	value, err := ReadU8(a)
	if err != nil {
		return false, err
	}
	return value == 1, nil
}

func WriteBool(a Attribute, value bool) error {
	if value {
		return WriteU8(a, 1)
	}
	return WriteU8(a, 0)
}

// WriteU8Array writes the values separated by spaces, the format used by
// write-only multi value attributes like kbd_rgb_mode
func WriteU8Array(a Attribute, values []uint8) error {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = strconv.Itoa(int(value))
	}
	return a.Write([]byte(strings.Join(parts, " ")))
}

var ErrDeviceNotFound = errors.New("device not found")
