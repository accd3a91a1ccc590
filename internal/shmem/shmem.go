// Package shmem implements a single-movement register shared between processes through a memory mapped
// file.
//
// The search process publishes its best movement after each completed depth with Store, while the
// supervisor process reads it with Load when its deadline hits, and then kills the search process. Only a
// single 64-bit word is shared, and it is always accessed with atomic operations, so a reader never sees a
// partially written movement.
package shmem

import (
	"os"
	"path/filepath"

	"github.com/blobwar/blobwarGo/internal/state"
	"github.com/pkg/errors"
)

// EnvVar is the environment variable with the path of the register, passed to the search process.
const EnvVar = "BLOBWAR_SHMEM"

// Size of the register file in bytes.
const Size = 8

const (
	writtenBit = uint64(1) << 63
	hasMoveBit = uint64(1) << 62
	codeMask   = uint64(0xFFFF)
)

// ErrUnsupported is returned by Create and Connect on platforms without memory mapped files.
var ErrUnsupported = errors.New("shared memory register not supported on this platform")

// encode packs a movement and whether it was found in one word. Zero means "never written".
func encode(move state.Movement, found bool) uint64 {
	word := writtenBit
	if found {
		word |= hasMoveBit | uint64(move.Encode())
	}
	return word
}

// decode is the inverse of encode.
func decode(word uint64) (move state.Movement, found, written bool) {
	written = word&writtenBit != 0
	found = word&hasMoveBit != 0
	if found {
		move = state.DecodeMovement(uint16(word & codeMask))
	}
	return
}

// DefaultDir returns the directory where registers are created: /dev/shm if available (memory only),
// otherwise os.TempDir().
func DefaultDir() string {
	if info, err := os.Stat("/dev/shm"); err == nil && info.IsDir() {
		return "/dev/shm"
	}
	return os.TempDir()
}

// TempPath returns a new unique path for a register in DefaultDir. The file is created empty, and Create
// is expected to be called on it.
func TempPath() (string, error) {
	f, err := os.CreateTemp(DefaultDir(), "blobwar-*.move")
	if err != nil {
		return "", errors.Wrap(err, "failed to create shared memory register file")
	}
	path := f.Name()
	if err = f.Close(); err != nil {
		return "", errors.Wrapf(err, "failed to close %q", path)
	}
	return filepath.Clean(path), nil
}
