package attr

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// FindDevice locates a device of the given subsystem by its sysname,
// looking at /sys/class/<subsystem>/<name> and /sys/bus/<subsystem>/devices/<name>.
// The returned path has all symlinks resolved.
func FindDevice(sysRoot string, subsystem string, name string) (string, error) {
	candidates := []string{
		filepath.Join(sysRoot, "class", subsystem, name),
		filepath.Join(sysRoot, "bus", subsystem, "devices", name),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		resolved, err := filepath.EvalSymlinks(candidate)
		if err != nil {
			return candidate, nil
		}
		return resolved, nil
	}
	return "", fmt.Errorf("%w: %s/%s", ErrDeviceNotFound, subsystem, name)
}

// FindDevices returns all devices of a subsystem whose sysname matches the given expression, sorted by name
func FindDevices(sysRoot string, subsystem string, expr *regexp.Regexp) []string {
	var result []string
	for _, base := range []string{
		filepath.Join(sysRoot, "class", subsystem),
		filepath.Join(sysRoot, "bus", subsystem, "devices"),
	} {
		entries, err := os.ReadDir(base)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !expr.MatchString(entry.Name()) {
				continue
			}
			path := filepath.Join(base, entry.Name())
			if resolved, err := filepath.EvalSymlinks(path); err == nil {
				path = resolved
			}
			result = append(result, path)
		}
		if len(result) > 0 {
			break
		}
	}
	sort.Strings(result)
	return result
}

// ReadUevent parses the uevent file of a device into a key/value map
func ReadUevent(devicePath string) map[string]string {
	result := map[string]string{}
	data, err := os.ReadFile(filepath.Join(devicePath, "uevent"))
	if err != nil {
		return result
	}
	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), "=")
		if found {
			result[key] = value
		}
	}
	return result
}
