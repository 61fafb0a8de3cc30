package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript drops an executable stand-in for mmdc into a temp dir.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stand-in for mmdc needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "mmdc")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

const okScript = `
out=""
while [ "$#" -gt 0 ]; do
  if [ "$1" = "-o" ]; then out="$2"; fi
  shift
done
printf '<svg xmlns="http://www.w3.org/2000/svg"><text>ok</text></svg>' > "$out"
`

func TestNewMermaidCLIMissingBinary(t *testing.T) {
	_, err := NewMermaidCLI(filepath.Join(t.TempDir(), "does-not-exist"), "")
	assert.Error(t, err)
}

func TestMermaidCLIRender(t *testing.T) {
	m, err := NewMermaidCLI(writeScript(t, okScript), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, m.theme)

	out, err := m.Render(context.Background(), "graph TD\n  A-->B")
	require.NoError(t, err)
	assert.Contains(t, out.SVG, "<svg")
}

func TestMermaidCLIRenderFailure(t *testing.T) {
	m, err := NewMermaidCLI(writeScript(t, "echo 'Parse error on line 1' >&2\nexit 1\n"), "forest")
	require.NoError(t, err)

	out, err := m.Render(context.Background(), "not mermaid")
	assert.Nil(t, out)

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Contains(t, renderErr.Detail, "Parse error")
}

func TestMermaidCLIRenderNoOutput(t *testing.T) {
	m, err := NewMermaidCLI(writeScript(t, "exit 0\n"), "")
	require.NoError(t, err)

	_, err = m.Render(context.Background(), "graph TD")
	var renderErr *RenderError
	assert.True(t, errors.As(err, &renderErr))
}

func TestMermaidCLIRenderEmptyMarkup(t *testing.T) {
	m, err := NewMermaidCLI(writeScript(t, okScript), "")
	require.NoError(t, err)

	_, err = m.Render(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMarkup)
}

func TestFuncRenderer(t *testing.T) {
	var r Renderer = Func(func(_ context.Context, markup string) (*Rendered, error) {
		return &Rendered{SVG: "<svg>" + markup + "</svg>"}, nil
	})
	out, err := r.Render(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "<svg>x</svg>", out.SVG)
}
