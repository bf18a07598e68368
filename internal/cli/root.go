package cli

import (
	"github.com/spf13/cobra"

	"clinicd/internal/structures"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Debug      bool
}

func (o *RootOptions) cliFlags() *structures.CliFlags {
	return &structures.CliFlags{
		ConfigPath: o.ConfigPath,
		DebugMode:  o.Debug,
	}
}

// NewRootCommand creates the root command for the clinicd CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "clinicd",
		Short: "Local patient record daemon",
		Long:  "Patient record manager core for a single clinic workstation: local persistence, scheduled backups, portable snapshots.",
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "config.yaml", "path to config file")
	cmd.PersistentFlags().BoolVarP(&opts.Debug, "debug", "d", false, "log to stderr as well as the log file")

	// Add subcommands
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))

	return cmd
}
