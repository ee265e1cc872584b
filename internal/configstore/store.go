// Package configstore loads, migrates and persists versioned json documents.
package configstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/markusressel/asus2go/internal/ui"
	"github.com/natefinch/atomic"
)

const backupSuffix = "-old"

type Store[T any] struct {
	mu sync.Mutex

	path         string
	defaultValue func() T
	// tried in order, newest prior schema first
	migrations   []Migration[T]
	normalize    func(*T)
	atomicWrites bool
}

type Option[T any] func(*Store[T])

func WithDefault[T any](defaultValue func() T) Option[T] {
	return func(s *Store[T]) {
		s.defaultValue = defaultValue
	}
}

// WithMigrations registers prior schema versions, newest first
func WithMigrations[T any](migrations ...Migration[T]) Option[T] {
	return func(s *Store[T]) {
		s.migrations = append(s.migrations, migrations...)
	}
}

// WithNormalize registers a function applied to every loaded value
func WithNormalize[T any](normalize func(*T)) Option[T] {
	return func(s *Store[T]) {
		s.normalize = normalize
	}
}

// WithAtomicWrites enables write-to-temp-then-rename when persisting
func WithAtomicWrites[T any](enabled bool) Option[T] {
	return func(s *Store[T]) {
		s.atomicWrites = enabled
	}
}

func New[T any](path string, options ...Option[T]) *Store[T] {
	s := &Store[T]{
		path: path,
		defaultValue: func() T {
			var empty T
			return empty
		},
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Store[T]) Path() string {
	return s.path
}

// Load reads the document from disk.
//
// A missing or empty file results in the default being written and returned.
// A document of a prior schema version is converted and persisted again right away.
// A document that cannot be decoded at all is moved to "<path>-old" and replaced by the default.
// The returned error is only non-nil if the file could not be read or written.
func (s *Store[T]) Load() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return s.normalized(s.defaultValue()), fmt.Errorf("reading config %s: %w", s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		ui.Info("Config %s is missing or empty, creating default", s.path)
		return s.writeDefault()
	}

	var current T
	currentErr := DecodeStrict(data, &current)
	if currentErr == nil {
		return s.normalized(current), nil
	}

	for _, m := range s.migrations {
		migrated, err := m.Migrate(data)
		if err != nil {
			ui.Debug("Config %s is not of version %s: %v", s.path, m.Version(), err)
			continue
		}
		ui.Info("Updated config version of %s from %s", s.path, m.Version())
		migrated = s.normalized(migrated)
		if err := s.write(migrated); err != nil {
			return migrated, err
		}
		return migrated, nil
	}

	parseErr := &ConfigParseError{Path: s.path, Err: currentErr}
	ui.Error("%v", parseErr)
	backupPath := s.path + backupSuffix
	if err := os.Rename(s.path, backupPath); err != nil {
		ui.Warning("Could not move unreadable config to %s: %v", backupPath, err)
	} else {
		ui.Warning("Moved unreadable config to %s", backupPath)
	}
	return s.writeDefault()
}

// Write serializes doc and replaces the file content
func (s *Store[T]) Write(doc T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(doc)
}

func (s *Store[T]) writeDefault() (T, error) {
	value := s.normalized(s.defaultValue())
	return value, s.write(value)
}

func (s *Store[T]) normalized(value T) T {
	if s.normalize != nil {
		s.normalize(&value)
	}
	return value
}

func (s *Store[T]) write(doc T) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing config %s: %w", s.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if s.atomicWrites {
		err = atomic.WriteFile(s.path, bytes.NewReader(data))
	} else {
		err = os.WriteFile(s.path, data, 0644)
	}
	if err != nil {
		return fmt.Errorf("writing config %s: %w", s.path, err)
	}
	return nil
}
