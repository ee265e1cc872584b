package persistence

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/markusressel/asus2go/internal/anime"
	"github.com/markusressel/asus2go/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func newTestPersistence(t *testing.T) Persistence {
	p := NewPersistence(filepath.Join(t.TempDir(), "db", "asus2go.db"))
	require.NoError(t, p.Init())
	return p
}

func testLists() anime.ResolvedLists {
	showFor := anime.Seconds(2)
	return anime.ResolvedLists{
		System: []anime.ActionData{
			{
				Kind:       anime.ActionAnimation,
				Frames:     [][]byte{{1, 2, 3}, {4, 5, 6}},
				Delays:     []time.Duration{100 * time.Millisecond, 50 * time.Millisecond},
				Time:       anime.Count(3),
				Brightness: 0.5,
			},
			{Kind: anime.ActionPause, Pause: time.Second},
		},
		Boot: []anime.ActionData{
			{
				Kind:       anime.ActionImage,
				Frames:     [][]byte{{255, 0}},
				Time:       anime.NewFade(anime.Seconds(1), &showFor, anime.Seconds(1.5)),
				Brightness: 1,
			},
		},
	}
}

func TestPersistence_SaveAndLoadActions(t *testing.T) {
	// GIVEN
	p := newTestPersistence(t)
	expected := testLists()
	fingerprint := []byte{1, 2, 3}

	// WHEN
	err := p.SaveActions(platform.AnimeTypeGA401, fingerprint, expected)
	require.NoError(t, err)
	lists, ok := p.LoadActions(platform.AnimeTypeGA401, fingerprint)

	// THEN
	assert.True(t, ok)
	assert.Equal(t, expected.System, lists.System)
	assert.Equal(t, expected.Boot, lists.Boot)
	assert.Empty(t, lists.Wake)
	assert.Empty(t, lists.Shutdown)
}

func TestPersistence_LoadActions_FingerprintMismatch(t *testing.T) {
	// GIVEN
	p := newTestPersistence(t)
	require.NoError(t, p.SaveActions(platform.AnimeTypeGA401, []byte{1}, testLists()))

	// WHEN
	_, ok := p.LoadActions(platform.AnimeTypeGA401, []byte{2})

	// THEN
	assert.False(t, ok)
}

func TestPersistence_LoadActions_KeyedByType(t *testing.T) {
	// GIVEN
	p := newTestPersistence(t)
	require.NoError(t, p.SaveActions(platform.AnimeTypeGA401, []byte{1}, testLists()))

	// WHEN
	_, ok := p.LoadActions(platform.AnimeTypeGA402, []byte{1})

	// THEN
	assert.False(t, ok)
}

func TestPersistence_DeleteActions(t *testing.T) {
	// GIVEN
	p := newTestPersistence(t)
	require.NoError(t, p.SaveActions(platform.AnimeTypeGA401, []byte{1}, testLists()))

	// WHEN
	err := p.DeleteActions(platform.AnimeTypeGA401)
	errMissing := p.DeleteActions(platform.AnimeTypeGA402)

	// THEN
	assert.NoError(t, err)
	assert.NoError(t, errMissing)
	_, ok := p.LoadActions(platform.AnimeTypeGA401, []byte{1})
	assert.False(t, ok)
}

func TestPersistence_LoadActions_CorruptEntryIsDropped(t *testing.T) {
	// GIVEN
	dbPath := filepath.Join(t.TempDir(), "asus2go.db")
	p := NewPersistence(dbPath)
	require.NoError(t, p.Init())
	db, err := bolt.Open(dbPath, 0600, nil)
	require.NoError(t, err)
	require.NoError(t, db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketAnimeActions))
		if err != nil {
			return err
		}
		return b.Put([]byte(platform.AnimeTypeGA401.String()), []byte{0xff, 0x00, 0x13})
	}))
	require.NoError(t, db.Close())

	// WHEN
	_, ok := p.LoadActions(platform.AnimeTypeGA401, []byte{1})

	// THEN
	assert.False(t, ok)
	db, err = bolt.Open(dbPath, 0600, nil)
	require.NoError(t, err)
	defer db.Close()
	_ = db.View(func(tx *bolt.Tx) error {
		assert.Nil(t, tx.Bucket([]byte(BucketAnimeActions)).Get([]byte(platform.AnimeTypeGA401.String())))
		return nil
	})
}

func TestPersistence_ImplementsActionCache(t *testing.T) {
	var _ anime.ActionCache = NewPersistence("unused.db")
}
