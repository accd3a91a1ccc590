//go:build !unix

package shmem

import (
	"github.com/blobwar/blobwarGo/internal/state"
)

// AtomicMove is not available on this platform: Create and Connect always return ErrUnsupported.
type AtomicMove struct{}

func Create(path string) (*AtomicMove, error)  { return nil, ErrUnsupported }
func Connect(path string) (*AtomicMove, error) { return nil, ErrUnsupported }

func (r *AtomicMove) Path() string                                     { return "" }
func (r *AtomicMove) Store(move state.Movement, found bool)            {}
func (r *AtomicMove) Load() (move state.Movement, found, written bool) { return }
func (r *AtomicMove) Close() error                                     { return nil }
func (r *AtomicMove) Remove() error                                    { return nil }
