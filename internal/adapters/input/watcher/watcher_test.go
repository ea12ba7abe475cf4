package watcher

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"rgb-controller/internal/adapters/output/persistence"
	"rgb-controller/internal/ports/mocks"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColoursWatcher(t *testing.T) {
	dir := t.TempDir()
	coloursPath := filepath.Join(dir, "colours.json")
	repo := persistence.NewJSONPreferencesRepository(filepath.Join(dir, "preferences.json"), coloursPath)
	view := &mocks.View{}

	w, err := New(coloursPath, repo, view, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(coloursPath, []byte(`[{"name":"Red","hex":"#FF0000"}]`), 0o644))

	require.Eventually(t, func() bool {
		return len(view.Variables("COLOURS")) > 0
	}, 3*time.Second, 20*time.Millisecond)

	values := view.Variables("COLOURS")
	assert.Equal(t, []interface{}{map[string]interface{}{"name": "Red", "hex": "#FF0000"}}, values[len(values)-1])
}

func TestColoursWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	repo := persistence.NewJSONPreferencesRepository(filepath.Join(dir, "p.json"), filepath.Join(dir, "c.json"))
	w, err := New(filepath.Join(dir, "c.json"), repo, &mocks.View{}, nil)
	require.NoError(t, err)
	w.Start()
	w.Stop()
	w.Stop()
}
