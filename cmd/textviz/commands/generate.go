package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/1broseidon/textviz/models"
	"github.com/1broseidon/textviz/orchestrator"
)

var phaseLabels = map[models.Phase]string{
	models.PhaseSummarizing: "Distilling the content...",
	models.PhaseDrawing:     "Drawing the visual...",
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run one generation cycle and save the visual",
	Long: `Summarize the input and turn it into a visual, then save it into the output
directory as diagram-<millis>.svg or visual-<millis>.png.

The input is plain text or a single http(s) URL, in which case the page is
retrieved through the model's web search.

Example:
  textviz generate -i "https://go.dev/blog/pipelines" -c flowchart
  textviz generate -f notes.md -c illustration -o ./out
  cat notes.md | textviz generate -f -`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputText, _ := cmd.Flags().GetString("input")
		inputFile, _ := cmd.Flags().GetString("file")
		categoryName, _ := cmd.Flags().GetString("category")
		outDir, _ := cmd.Flags().GetString("out")

		input, err := readInput(inputText, inputFile, cmd.InOrStdin())
		if err != nil {
			return err
		}
		category, err := models.ParseCategory(categoryName)
		if err != nil {
			return err
		}

		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		stderr := cmd.ErrOrStderr()
		progress := color.New(color.FgCyan)
		o := a.newOrchestrator()
		o.OnPhase(func(p models.Phase) {
			if label, ok := phaseLabels[p]; ok {
				progress.Fprintln(stderr, label)
			}
		})

		if err := o.Submit(cmd.Context(), input, category); err != nil {
			return errors.New(o.Snapshot().Error)
		}

		return saveResult(o, outDir, cmd.OutOrStdout(), stderr)
	},
}

// saveResult reports the finished cycle. A diagram that failed to render is
// reported by message only; its markup stays in state.
func saveResult(o *orchestrator.Orchestrator, outDir string, stdout, stderr io.Writer) error {
	state := o.Snapshot()
	if state.Result == nil {
		return errors.New("nothing was generated")
	}
	if state.RenderError != "" {
		color.New(color.FgYellow).Fprintln(stderr, state.RenderError)
		return nil
	}

	saver := &orchestrator.DirSaver{Dir: outDir}
	o.Download(saver)
	if saver.Saved == "" {
		return errors.New("nothing was saved")
	}
	color.New(color.FgGreen).Fprintf(stderr, "%s (%s)\n", state.Result.Desc(), state.Result.Category())
	fmt.Fprintln(stdout, saver.Saved)
	return nil
}

// readInput takes the inline text, or the file contents when a path is given.
// A path of "-" reads standard input.
func readInput(text, path string, stdin io.Reader) (string, error) {
	if text != "" && path != "" {
		return "", errors.New("use either --input or --file, not both")
	}
	if path == "" {
		return text, nil
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func init() {
	AddCommand(generateCmd)
	generateCmd.Flags().StringP("input", "i", "", "Text or URL to visualize.")
	generateCmd.Flags().StringP("file", "f", "", "Read the input from a file, or '-' for stdin.")
	generateCmd.Flags().StringP("category", "c", string(models.CategoryAuto), "Visual kind: auto, flowchart, mindmap, chart, illustration.")
	generateCmd.Flags().StringP("out", "o", ".", "Directory to save the visual into.")
}
