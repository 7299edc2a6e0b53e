package main

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/certlookup/internal/model"
	"github.com/sells-group/certlookup/internal/present"
	"github.com/sells-group/certlookup/internal/render"
)

func TestUniqueNames(t *testing.T) {
	records := []model.Record{
		{Identifier: "A"},
		{Identifier: "A"},
		{Identifier: "A-2"},
		{Identifier: "a/b"},
		{Identifier: ""},
	}
	assert.Equal(t, []string{"A.png", "A-2.png", "A-2-2.png", "a_b.png", "certificate.png"}, uniqueNames(records))
}

func TestRenderAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	engine := render.NewEngine(render.Options{})
	adapter := present.NewAdapter(present.LocaleZH, present.Literals{}, "")

	paths, err := renderAll(context.Background(), engine, adapter, hitSet(), dir, 2)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "2005L6-366.png"), paths[0])
	assert.Equal(t, filepath.Join(dir, "2005L6-367.png"), paths[1])

	for _, p := range paths {
		f, err := os.Open(p)
		require.NoError(t, err)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, render.Width, img.Bounds().Dx())
		assert.Equal(t, render.Height, img.Bounds().Dy())
	}
}

func TestRenderAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := render.NewEngine(render.Options{})
	adapter := present.NewAdapter(present.LocaleZH, present.Literals{}, "")
	_, err := renderAll(ctx, engine, adapter, hitSet(), t.TempDir(), 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderCommand_EndToEnd(t *testing.T) {
	dir := inWorkDir(t, true)

	out, _, err := runCLI(t, "render", "2005l6", "--out", "pngs", "--locale", "en", "--concurrency", "0")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	for _, name := range []string{"2005L6-366.png", "2005L6-367.png"} {
		_, err := os.Stat(filepath.Join(dir, "pngs", name))
		assert.NoError(t, err, name)
	}
}
