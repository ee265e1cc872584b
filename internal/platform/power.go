package platform

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/markusressel/asus2go/internal/attr"
	"github.com/markusressel/asus2go/internal/util"
)

const (
	pciClassDisplay3D  = "0x0302"
	pciClassDisplayVGA = "0x0300"
	pciVendorNvidia    = "0x10de"
	pciVendorAmd       = "0x1002"
	pciVendorIntel     = "0x8086"
)

// Battery is a power_supply device supporting a charge limit
type Battery struct {
	Path string

	ChargeControlEndThreshold attr.Attribute
}

func NewBattery(sysRoot string) (*Battery, error) {
	for _, path := range attr.FindDevices(sysRoot, "power_supply", regexp.MustCompile(`^BAT[0-9CT]?$`)) {
		threshold := attr.NewFileAttribute(path, "charge_control_end_threshold")
		if threshold.Exists() {
			return &Battery{Path: path, ChargeControlEndThreshold: threshold}, nil
		}
	}
	return nil, fmt.Errorf("%w: battery with charge_control_end_threshold", attr.ErrDeviceNotFound)
}

// DgpuPower exposes the runtime power status of the discrete gpu
type DgpuPower struct {
	Path string

	RuntimeStatus attr.Attribute
}

// NewDgpuPower finds the first non-intel display controller on the pci bus.
// On hybrid laptops with an AMD apu the apu usually shows up as VGA controller
// while the dGPU is a 3D controller, so 3D controllers are preferred.
func NewDgpuPower(sysRoot string) (*DgpuPower, error) {
	devices := attr.FindDevices(sysRoot, "pci", regexp.MustCompile(`^[0-9a-f]{4}:`))
	var fallback string
	for _, path := range devices {
		class, _ := util.ReadTrimmedFile(filepath.Join(path, "class"))
		vendor, _ := util.ReadTrimmedFile(filepath.Join(path, "vendor"))
		if vendor == pciVendorIntel {
			continue
		}
		if strings.HasPrefix(class, pciClassDisplay3D) && (vendor == pciVendorNvidia || vendor == pciVendorAmd) {
			return newDgpuPower(path), nil
		}
		if strings.HasPrefix(class, pciClassDisplayVGA) && vendor == pciVendorNvidia && fallback == "" {
			fallback = path
		}
	}
	if fallback != "" {
		return newDgpuPower(fallback), nil
	}
	return nil, fmt.Errorf("%w: discrete gpu", attr.ErrDeviceNotFound)
}

func newDgpuPower(path string) *DgpuPower {
	return &DgpuPower{
		Path:          path,
		RuntimeStatus: attr.NewFileAttribute(filepath.Join(path, "power"), "runtime_status"),
	}
}

// EfiVars gives access to the ASUS specific EFI variables
type EfiVars struct {
	PostSound attr.Attribute
}

const postLogoSoundVar = "AsusPostLogoSound-607005d5-3f75-4b2d-9cf4-c3a8e4e8b0d2"

func NewEfiVars(sysRoot string) (*EfiVars, error) {
	postSound := attr.NewFileAttribute(filepath.Join(sysRoot, "firmware", "efi", "efivars"), postLogoSoundVar)
	if !postSound.Exists() {
		return nil, fmt.Errorf("%w: efivar %s", attr.ErrDeviceNotFound, postLogoSoundVar)
	}
	return &EfiVars{PostSound: postSound}, nil
}

// efivarNonVolatileAccess is the 4 byte attribute header (NV | BS | RT) prefixing efivar data
var efivarNonVolatileAccess = []byte{0x07, 0x00, 0x00, 0x00}

// ReadEfiBool reads a single byte efivar
func ReadEfiBool(a attr.Attribute) (bool, error) {
	data, err := a.Read()
	if err != nil {
		return false, err
	}
	if len(data) < len(efivarNonVolatileAccess)+1 {
		return false, fmt.Errorf("efivar %s too short: %d bytes", a.Name(), len(data))
	}
	return data[len(efivarNonVolatileAccess)] == 1, nil
}

// WriteEfiBool writes a single byte efivar including the attribute header
func WriteEfiBool(a attr.Attribute, value bool) error {
	data := append([]byte{}, efivarNonVolatileAccess...)
	if value {
		data = append(data, 1)
	} else {
		data = append(data, 0)
	}
	return a.Write(data)
}
