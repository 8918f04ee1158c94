package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceUVM/pkg/diag"
)

var checkCmd = &cobra.Command{
	Use:   "check <vip-file>...",
	Short: "Report topology, identifier and direction problems",
	Long: `Run the whole resolution without writing any file and print every
warning and error found. Exits non-zero when errors were reported.

Examples:
  uvmgen check vips/*.toml
  uvmgen check -i other_instances.toml vips/a.toml vips/b.toml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addInputFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	_, diags, _, err := loadModel(args)
	if diags != nil {
		out := cmd.OutOrStdout()
		for _, d := range diags.Filter(diag.Warning) {
			fmt.Fprintln(out, d)
		}
		fmt.Fprintln(out, summary(diags))
	}
	if err != nil {
		return err
	}
	if diags.HasErrors() {
		return fmt.Errorf("check failed: %s", summary(diags))
	}
	return nil
}
