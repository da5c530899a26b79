// File path: internal/esg/loader.go
package esg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDataFile is the conventional name of the on-disk input payload.
const DefaultDataFile = "esg_data.json"

// ErrDataFileNotFound is returned when no payload file can be located.
var ErrDataFileNotFound = errors.New("esg data file not found")

// LoadFile reads and decodes a payload file into a Record.
func LoadFile(path string) (Record, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Record{}, fmt.Errorf("read data file: %w", err)
	}
	rec, err := ParsePayload(data)
	if err != nil {
		return Record{}, fmt.Errorf("decode data file %s: %w", path, err)
	}
	return rec, nil
}

// FindDataFile searches for the named payload file in the start directory and
// up to two parent directories, mirroring how operators drop esg_data.json
// next to, or above, the working directory.
func FindDataFile(startDir, name string) (string, error) {
	if name == "" {
		name = DefaultDataFile
	}
	if startDir == "" {
		startDir = "."
	}
	dir := startDir
	for i := 0; i < 3; i++ {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		dir = filepath.Join(dir, "..")
	}
	return "", fmt.Errorf("%w: %s (searched %s and two parents)", ErrDataFileNotFound, name, startDir)
}
