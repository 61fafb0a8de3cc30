package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "textviz",
	Short: "textviz turns text or a web page into a diagram or an illustration",
	Long: `textviz condenses raw text, or the page behind a URL, with a language model
and turns the result into a Mermaid diagram (flowchart, mind map, chart) or a
generated infographic image.

Credentials and models are read from the environment or a .env file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override: debug, info, warn, error, disabled (default: LOG_LEVEL env var or info)")
}

// AddCommand allows adding subcommands from other files.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}
