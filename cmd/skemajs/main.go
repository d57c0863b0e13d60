package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/skemajs/cmd/skemajs/commands"
)

func main() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skemajs",
		Short: "skemajs converts schema definitions to JSON Schema and OpenAPI",
		Long: `skemajs imports OpenAPI v3 schemas and Kubernetes CRDs into a definition
graph and renders them as JSON Schema draft-07 or OpenAPI 3.0 documents.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Global flags
	cmd.PersistentFlags().String("config", "", "Path to config file (default skemajs.yaml if present)")
	cmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging")

	commands.AddConvertCommand(cmd)
	commands.AddVersionCommand(cmd)
	return cmd
}
