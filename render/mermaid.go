package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultTheme matches the sketchbook look of the web canvas.
const DefaultTheme = "neutral"

// Hand-drawn font stack with CJK fallbacks so labels never render as boxes.
const fontStack = `"Comic Sans MS", "Chalkboard SE", "Marker Felt", "PingFang SC", "Hiragino Sans GB", "Microsoft YaHei", "WenQuanYi Micro Hei", sans-serif`

// MermaidCLI renders markup with the Mermaid command line tool (mmdc).
type MermaidCLI struct {
	executablePath string
	theme          string
}

// NewMermaidCLI resolves the mmdc executable, either a path or a name on PATH.
func NewMermaidCLI(executable, theme string) (*MermaidCLI, error) {
	if executable == "" {
		executable = "mmdc"
	}
	path, err := exec.LookPath(executable)
	if err != nil {
		return nil, fmt.Errorf("mermaid cli not found at %q: %w", executable, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve mermaid cli path: %w", err)
	}
	if theme == "" {
		theme = DefaultTheme
	}
	return &MermaidCLI{executablePath: abs, theme: theme}, nil
}

type mermaidConfig struct {
	StartOnLoad    bool              `json:"startOnLoad"`
	Theme          string            `json:"theme"`
	Look           string            `json:"look"`
	SecurityLevel  string            `json:"securityLevel"`
	FontFamily     string            `json:"fontFamily"`
	ThemeVariables map[string]string `json:"themeVariables"`
}

func (m *MermaidCLI) config() mermaidConfig {
	return mermaidConfig{
		Theme:         m.theme,
		Look:          "handDrawn",
		SecurityLevel: "loose",
		FontFamily:    fontStack,
		ThemeVariables: map[string]string{
			"fontFamily":   fontStack,
			"primaryColor": "#fef3c7",
			"lineColor":    "#57534e",
			"textColor":    "#1c1917",
			"mainBkg":      "#fffbeb",
			"nodeBorder":   "#d97706",
			"clusterBkg":   "#fafaf9",
		},
	}
}

// Render writes the markup to a scratch directory, runs mmdc once and reads the SVG back.
func (m *MermaidCLI) Render(ctx context.Context, markup string) (*Rendered, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, &RenderError{Err: ErrEmptyMarkup}
	}

	workDir, err := os.MkdirTemp("", "textviz-mermaid-")
	if err != nil {
		return nil, &RenderError{Err: fmt.Errorf("failed to create work directory: %w", err)}
	}
	defer os.RemoveAll(workDir)

	inputPath := filepath.Join(workDir, "diagram.mmd")
	outputPath := filepath.Join(workDir, "diagram.svg")
	configPath := filepath.Join(workDir, "config.json")

	if err := os.WriteFile(inputPath, []byte(markup), 0644); err != nil {
		return nil, &RenderError{Err: fmt.Errorf("failed to write input file: %w", err)}
	}
	cfg, err := json.Marshal(m.config())
	if err != nil {
		return nil, &RenderError{Err: err}
	}
	if err := os.WriteFile(configPath, cfg, 0644); err != nil {
		return nil, &RenderError{Err: fmt.Errorf("failed to write config file: %w", err)}
	}

	args := []string{
		"-i", inputPath,
		"-o", outputPath,
		"-t", m.theme,
		"-b", "transparent",
		"-c", configPath,
		"-q",
	}
	cmd := exec.CommandContext(ctx, m.executablePath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Dir = workDir

	if err := cmd.Run(); err != nil {
		return nil, &RenderError{Err: err, Detail: strings.TrimSpace(stderr.String())}
	}

	svg, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, &RenderError{Err: fmt.Errorf("no svg produced: %w", err), Detail: strings.TrimSpace(stderr.String())}
	}
	return &Rendered{SVG: string(svg)}, nil
}
