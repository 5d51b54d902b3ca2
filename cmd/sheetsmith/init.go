package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith"
)

var initForce bool

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [config.yaml]",
		Short: "Write a default configuration file",
		Long: `Writes the default configuration as YAML. The path defaults to --config,
then to sheetsmith.yaml in the current directory. API keys are left empty;
set them in the file or through the provider's environment variable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}

	cmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		path = "sheetsmith.yaml"
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := sheetsmith.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
	return nil
}
