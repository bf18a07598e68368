package cli

import (
	"github.com/spf13/cobra"

	"clinicd/internal/di"
)

// NewServeCommand runs the daemon until it is signalled to stop.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the record daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := di.InitApp(opts.cliFlags())
			return err
		},
	}
}
