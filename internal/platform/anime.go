package platform

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/markusressel/asus2go/internal/attr"
	"github.com/markusressel/asus2go/internal/util"
)

// hid id of the ASUS N-KEY device hosting the AniMe matrix
const animeHidId = "00000B05:00001866"

// AnimeDevice is the hidraw node used to stream packets to the AniMe matrix
type AnimeDevice struct {
	Node      attr.Attribute
	BoardName string
}

func NewAnimeDevice(sysRoot string, devRoot string) (*AnimeDevice, error) {
	for _, path := range attr.FindDevices(sysRoot, "hidraw", regexp.MustCompile(`^hidraw\d+$`)) {
		uevent := attr.ReadUevent(filepath.Join(path, "device"))
		if !strings.HasSuffix(uevent["HID_ID"], animeHidId) {
			continue
		}
		boardName, _ := util.ReadTrimmedFile(filepath.Join(sysRoot, "class", "dmi", "id", "board_name"))
		return &AnimeDevice{
			Node:      attr.NewFileAttribute(devRoot, filepath.Base(path)),
			BoardName: boardName,
		}, nil
	}
	return nil, fmt.Errorf("%w: AniMe matrix (hid %s)", attr.ErrDeviceNotFound, animeHidId)
}

// AnimeType identifies the matrix generation, which determines the panel geometry
type AnimeType int

const (
	AnimeTypeUnknown AnimeType = iota
	AnimeTypeGA401
	AnimeTypeGA402
)

// AnimeGeometry is the led layout of a matrix generation
type AnimeGeometry struct {
	Width  int
	Height int
	// Panes is the number of packets needed to transfer a full frame
	Panes int
}

const (
	// AnimePacketLength is the size of every report sent to the matrix
	AnimePacketLength = 640
	// AnimePaneLength is the number of leds transferred by a single pane packet
	AnimePaneLength = 627
)

func (t AnimeType) String() string {
	switch t {
	case AnimeTypeGA401:
		return "GA401"
	case AnimeTypeGA402:
		return "GA402"
	}
	return "Unknown"
}

func (t AnimeType) Geometry() AnimeGeometry {
	switch t {
	case AnimeTypeGA402:
		return AnimeGeometry{Width: 34, Height: 55, Panes: 3}
	default:
		return AnimeGeometry{Width: 33, Height: 38, Panes: 2}
	}
}

// FrameLength is the number of bytes of a full device frame buffer
func (t AnimeType) FrameLength() int {
	return t.Geometry().Panes * AnimePaneLength
}

func (t AnimeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *AnimeType) UnmarshalText(text []byte) error {
	*t = ParseAnimeType(string(text))
	return nil
}

func ParseAnimeType(text string) AnimeType {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "GA401":
		return AnimeTypeGA401
	case "GA402":
		return AnimeTypeGA402
	}
	return AnimeTypeUnknown
}

// AnimeTypeFromBoardName derives the matrix generation from the DMI board name, e.g. "GA401QM"
func AnimeTypeFromBoardName(boardName string) AnimeType {
	name := strings.ToUpper(boardName)
	switch {
	case strings.Contains(name, "GA401"):
		return AnimeTypeGA401
	case strings.Contains(name, "GA402"):
		return AnimeTypeGA402
	}
	return AnimeTypeUnknown
}

func (d *AnimeDevice) Type() AnimeType {
	return AnimeTypeFromBoardName(d.BoardName)
}
