package anime

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/markusressel/asus2go/internal/platform"
	"github.com/zeebo/blake3"
)

// Fingerprint identifies the resolved form of a config: the matrix type, all action lists
// and the size and modification time of every referenced file.
func Fingerprint(animeType platform.AnimeType, config Config) ([]byte, error) {
	hasher := blake3.New()
	_, _ = fmt.Fprintf(hasher, "%s\n", animeType)

	for _, list := range [][]ActionLoader{config.System, config.Boot, config.Wake, config.Shutdown} {
		data, err := json.Marshal(list)
		if err != nil {
			return nil, err
		}
		_, _ = hasher.Write(data)
		_, _ = hasher.Write([]byte{'\n'})

		for _, action := range list {
			file := actionFile(action)
			if file == "" {
				continue
			}
			if info, err := os.Stat(file); err == nil {
				_, _ = fmt.Fprintf(hasher, "%s:%d:%d\n", file, info.Size(), info.ModTime().UnixNano())
			}
		}
	}
	return hasher.Sum(nil), nil
}

func actionFile(action ActionLoader) string {
	switch {
	case action.AsusAnimation != nil:
		return action.AsusAnimation.File
	case action.ImageAnimation != nil:
		return action.ImageAnimation.File
	case action.Image != nil:
		return action.Image.File
	}
	return ""
}
