package persistence

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/markusressel/asus2go/internal/anime"
	"github.com/markusressel/asus2go/internal/platform"
	"github.com/markusressel/asus2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketAnimeActions = "animeActions"
)

// Persistence holds data derived from the config files. Everything in it can be regenerated,
// so the database may be deleted at any time.
type Persistence interface {
	Init() error

	LoadActions(animeType platform.AnimeType, fingerprint []byte) (anime.ResolvedLists, bool)
	SaveActions(animeType platform.AnimeType, fingerprint []byte, lists anime.ResolvedLists) error
	DeleteActions(animeType platform.AnimeType) error
}

type actionsEntry struct {
	Fingerprint []byte              `cbor:"1,keyasint"`
	Lists       anime.ResolvedLists `cbor:"2,keyasint"`
}

var encMode cbor.EncMode
var decMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("persistence: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("persistence: CBOR decoder initialization failed: " + err.Error())
	}
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SaveActions replaces the cached action lists of the given matrix type
func (p persistence) SaveActions(animeType platform.AnimeType, fingerprint []byte, lists anime.ResolvedLists) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	key := animeType.String()

	data, err := encMode.Marshal(actionsEntry{Fingerprint: fingerprint, Lists: lists})
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketAnimeActions))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(key), data)
	})
}

// LoadActions returns the cached action lists of the given matrix type if they were
// resolved from a config with the given fingerprint
func (p persistence) LoadActions(animeType platform.AnimeType, fingerprint []byte) (anime.ResolvedLists, bool) {
	db, err := p.openPersistence()
	if err != nil {
		ui.Warning("Unable to open db %s: %v", p.dbPath, err)
		return anime.ResolvedLists{}, false
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	key := animeType.String()

	var entry actionsEntry
	found := false
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketAnimeActions))
		if b == nil {
			return nil
		}
		v := b.Get([]byte(key))
		if v == nil {
			return nil
		}

		err := decMode.Unmarshal(v, &entry)
		if err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved actions for %s: %v", key, err)
			err := b.Delete([]byte(key))
			if err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", key, err)
			}
			return nil
		}
		found = bytes.Equal(entry.Fingerprint, fingerprint)
		return nil
	})
	if err != nil {
		ui.Warning("Unable to load cached actions for %s: %v", key, err)
		return anime.ResolvedLists{}, false
	}

	return entry.Lists, found
}

func (p persistence) DeleteActions(animeType platform.AnimeType) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	key := animeType.String()

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketAnimeActions))
		if b == nil {
			// no bucket yet
			return nil
		}
		if b.Get([]byte(key)) == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}
