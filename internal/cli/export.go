package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// NewExportCommand writes a snapshot of the patient collection to a
// directory without the daemon running.
func NewExportCommand(opts *RootOptions) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the patient collection to a snapshot file",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCore(opts)
			if err != nil {
				return err
			}
			defer c.close()

			filename, err := c.snapshotter.ExportToDir(outDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d patients to %s\n", c.service.Count(), filepath.Join(outDir, filename))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write the snapshot into")
	return cmd
}
