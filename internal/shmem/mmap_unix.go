//go:build unix

package shmem

import (
	"os"
	"sync/atomic"
	"unsafe"

	"github.com/blobwar/blobwarGo/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
	"k8s.io/klog/v2"
)

// AtomicMove is a movement register mapped in memory, shared by every process that maps the same file.
type AtomicMove struct {
	path string
	data []byte
	word *uint64
}

// Create (or truncates) the register file at path, zeroes it and maps it. Used by the supervisor, which is
// also responsible for calling Remove.
func Create(path string) (*AtomicMove, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create shared memory register %q", path)
	}
	defer func() { _ = f.Close() }()
	if err = f.Truncate(Size); err != nil {
		return nil, errors.Wrapf(err, "failed to size shared memory register %q", path)
	}
	return mapFile(path, f)
}

// Connect maps an existing register created with Create. Used by the search process.
func Connect(path string) (*AtomicMove, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open shared memory register %q", path)
	}
	defer func() { _ = f.Close() }()
	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat shared memory register %q", path)
	}
	if info.Size() < Size {
		return nil, errors.Errorf("shared memory register %q has %d bytes, expected %d", path, info.Size(), Size)
	}
	return mapFile(path, f)
}

func mapFile(path string, f *os.File) (*AtomicMove, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, Size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to mmap shared memory register %q", path)
	}
	// mmap returns page aligned memory, so the word is 8-byte aligned as required by atomic operations.
	return &AtomicMove{
		path: path,
		data: data,
		word: (*uint64)(unsafe.Pointer(&data[0])),
	}, nil
}

// Path of the register file.
func (r *AtomicMove) Path() string {
	return r.path
}

// Store publishes the movement atomically. found=false publishes "no movement available".
func (r *AtomicMove) Store(move state.Movement, found bool) {
	atomic.StoreUint64(r.word, encode(move, found))
	if klog.V(2).Enabled() {
		klog.Infof("shmem %s: stored move=%s found=%v", r.path, move, found)
	}
}

// Load reads the last published movement atomically. written is false if Store was never called.
func (r *AtomicMove) Load() (move state.Movement, found, written bool) {
	return decode(atomic.LoadUint64(r.word))
}

// Close unmaps the register. The AtomicMove must not be used afterward.
func (r *AtomicMove) Close() error {
	if r.data == nil {
		return nil
	}
	err := unix.Munmap(r.data)
	r.data, r.word = nil, nil
	return errors.Wrapf(err, "failed to unmap shared memory register %q", r.path)
}

// Remove closes the register and deletes its file.
func (r *AtomicMove) Remove() error {
	if err := r.Close(); err != nil {
		return err
	}
	return errors.Wrapf(os.Remove(r.path), "failed to remove shared memory register %q", r.path)
}
