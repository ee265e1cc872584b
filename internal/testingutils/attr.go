package testingutils

import (
	"errors"
	"sync"
)

var ErrMockWrite = errors.New("mock write failure")

// MockAttribute is an in-memory attr.Attribute recording every write
type MockAttribute struct {
	mu sync.Mutex

	AttrName string
	Value    []byte
	Missing  bool
	FailRead bool
	// FailWrite makes every Write return ErrMockWrite
	FailWrite bool

	Writes [][]byte
}

func NewMockAttribute(name string, value string) *MockAttribute {
	return &MockAttribute{AttrName: name, Value: []byte(value)}
}

func (m *MockAttribute) Name() string {
	return m.AttrName
}

func (m *MockAttribute) Read() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Missing || m.FailRead {
		return nil, errors.New("mock read failure: " + m.AttrName)
	}
	return append([]byte{}, m.Value...), nil
}

func (m *MockAttribute) Write(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Missing || m.FailWrite {
		return ErrMockWrite
	}
	written := append([]byte{}, data...)
	m.Writes = append(m.Writes, written)
	m.Value = written
	return nil
}

func (m *MockAttribute) Exists() bool {
	return !m.Missing
}

func (m *MockAttribute) SetFailRead(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailRead = fail
}

func (m *MockAttribute) SetFailWrite(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailWrite = fail
}

func (m *MockAttribute) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Writes)
}

// LastWrite returns the most recent write, or nil if nothing was written yet
func (m *MockAttribute) LastWrite() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Writes) == 0 {
		return nil
	}
	return m.Writes[len(m.Writes)-1]
}
