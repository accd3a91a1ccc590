package profilers_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blobwar/blobwarGo/internal/profilers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfiles(t *testing.T) {
	dir := t.TempDir()
	heap := filepath.Join(dir, "heap.prof")
	require.NoError(t, profilers.WriteHeapProfile(heap))
	info, err := os.Stat(heap)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, profilers.WriteHeapProfile(filepath.Join(dir, "missing", "heap.prof")))
	_, err = profilers.StartCPUProfile(filepath.Join(dir, "missing", "cpu.prof"))
	assert.Error(t, err)
}
