package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewImportCommand replaces the patient collection with the contents of
// a snapshot file. The import is all-or-nothing: a malformed snapshot
// leaves existing data untouched.
func NewImportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <snapshot-file>",
		Short: "Replace the patient collection from a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			c, err := loadCore(opts)
			if err != nil {
				return err
			}
			defer c.close()

			if err := c.snapshotter.Import(data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d patients from %s\n", c.service.Count(), args[0])
			return nil
		},
	}
}
