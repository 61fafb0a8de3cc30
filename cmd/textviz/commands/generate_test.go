package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/textviz/models"
	"github.com/1broseidon/textviz/orchestrator"
	"github.com/1broseidon/textviz/render"
)

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("from a file\n"), 0644))

	tests := []struct {
		name    string
		text    string
		path    string
		stdin   string
		want    string
		wantErr bool
	}{
		{name: "inline text", text: "hello", want: "hello"},
		{name: "file", path: path, want: "from a file"},
		{name: "stdin", path: "-", stdin: "piped\n\n", want: "piped"},
		{name: "both", text: "x", path: path, wantErr: true},
		{name: "missing file", path: filepath.Join(t.TempDir(), "nope"), wantErr: true},
		{name: "nothing", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readInput(tt.text, tt.path, strings.NewReader(tt.stdin))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["generate"])

	for _, flag := range []string{"input", "file", "category", "out"} {
		assert.NotNil(t, generateCmd.Flags().Lookup(flag), flag)
	}
}

type cannedGenerator struct {
	result models.Result
}

func (g cannedGenerator) Summarize(context.Context, string, models.Category) (string, error) {
	return "summary", nil
}

func (g cannedGenerator) Visualize(context.Context, string, models.Category) (models.Result, error) {
	return g.result, nil
}

func TestSaveResult(t *testing.T) {
	const markup = "graph TD\n  A[broken"
	diagram := &models.DiagramResult{Kind: models.CategoryFlowchart, Markup: markup, Description: "d"}

	t.Run("render failure prints only the message", func(t *testing.T) {
		o := orchestrator.New(cannedGenerator{result: diagram}, render.Func(func(context.Context, string) (*render.Rendered, error) {
			return nil, &render.RenderError{Err: errors.New("parse error")}
		}))
		require.NoError(t, o.Submit(context.Background(), "text", models.CategoryFlowchart))

		var stdout, stderr bytes.Buffer
		out := t.TempDir()
		require.NoError(t, saveResult(o, out, &stdout, &stderr))

		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), render.RenderFailedMessage)
		assert.NotContains(t, stderr.String(), "broken")
		entries, err := os.ReadDir(out)
		require.NoError(t, err)
		assert.Empty(t, entries)
		assert.Equal(t, markup, o.Snapshot().Result.Content())
	})

	t.Run("rendered diagram is saved", func(t *testing.T) {
		o := orchestrator.New(cannedGenerator{result: diagram}, render.Func(func(context.Context, string) (*render.Rendered, error) {
			return &render.Rendered{SVG: "<svg/>"}, nil
		}), orchestrator.WithClock(func() time.Time { return time.UnixMilli(7) }))
		require.NoError(t, o.Submit(context.Background(), "text", models.CategoryFlowchart))

		var stdout, stderr bytes.Buffer
		out := t.TempDir()
		require.NoError(t, saveResult(o, out, &stdout, &stderr))

		want := filepath.Join(out, "diagram-7.svg")
		assert.Equal(t, want+"\n", stdout.String())
		data, err := os.ReadFile(want)
		require.NoError(t, err)
		assert.Equal(t, "<svg/>", string(data))
	})
}
