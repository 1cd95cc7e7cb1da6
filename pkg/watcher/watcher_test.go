package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gostruct/pkg/analysis"
	"github.com/philipparndt/gostruct/pkg/model"
)

func startWatcher(t *testing.T) *FileWatcher {
	t.Helper()
	fw, err := NewFileWatcher(20*time.Millisecond, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	fw.Start(ctx)
	t.Cleanup(func() {
		cancel()
		fw.Close()
	})
	return fw
}

func TestWatchDebouncesWrites(t *testing.T) {
	fw := startWatcher(t)
	path := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	calls := make(chan string, 10)
	require.NoError(t, fw.Watch(path, func(p string) { calls <- p }))

	for range 3 {
		require.NoError(t, os.WriteFile(path, []byte("b"), 0o644))
	}

	select {
	case got := <-calls:
		assert.Equal(t, filepath.Base(path), filepath.Base(got))
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	fw := startWatcher(t)
	dir := t.TempDir()
	calls := make(chan string, 10)
	require.NoError(t, fw.Watch(filepath.Join(dir, "watched.json"), func(p string) { calls <- p }))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))
	select {
	case got := <-calls:
		t.Fatalf("unexpected notification for %s", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchResultsDeliversValidFiles(t *testing.T) {
	fw := startWatcher(t)
	path := filepath.Join(t.TempDir(), "results.json")

	delivered := make(chan *model.ResultField, 10)
	require.NoError(t, fw.WatchResults(path, func(r *model.ResultField) { delivered <- r }))

	// a broken file is skipped
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))
	select {
	case <-delivered:
		t.Fatal("broken file delivered")
	case <-time.After(200 * time.Millisecond):
	}

	want := &model.ResultField{
		Stress: model.Range{Min: 1, Max: 2},
		Solids: map[string]model.SolidResult{"geo-a": {Displacements: []float64{0}, Stresses: []float64{1}}},
	}
	require.NoError(t, analysis.WriteResultsFile(path, want))

	select {
	case got := <-delivered:
		assert.Equal(t, want, got)
	case <-time.After(5 * time.Second):
		t.Fatal("results not delivered")
	}
}
