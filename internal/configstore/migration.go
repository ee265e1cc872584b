package configstore

// Migration decodes a document of a prior schema version and converts it into the current one
type Migration[T any] interface {
	Version() string
	Migrate(data []byte) (T, error)
}

type migration[Old any, T any] struct {
	version     string
	intoCurrent func(Old) T
}

// MigrateFrom creates a Migration that strictly decodes the document as Old
// and converts it using intoCurrent
func MigrateFrom[Old any, T any](version string, intoCurrent func(Old) T) Migration[T] {
	return &migration[Old, T]{version: version, intoCurrent: intoCurrent}
}

func (m *migration[Old, T]) Version() string {
	return m.version
}

func (m *migration[Old, T]) Migrate(data []byte) (T, error) {
	var old Old
	if err := DecodeStrict(data, &old); err != nil {
		var empty T
		return empty, err
	}
	return m.intoCurrent(old), nil
}
