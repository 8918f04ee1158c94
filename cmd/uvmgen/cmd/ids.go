package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var idsCmd = &cobra.Command{
	Use:   "ids <vip-file>...",
	Short: "Show the identifier allocated to every instance",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIDs,
}

func init() {
	rootCmd.AddCommand(idsCmd)
	addInputFlags(idsCmd)
}

func runIDs(cmd *cobra.Command, args []string) error {
	model, _, _, err := loadModel(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-16s %-10s %4s  %s\n", "VIP", "MODE", "ID", "CONNECTED TO")
	for _, inst := range model.Instances {
		fmt.Fprintf(out, "%-16s %-10s %4d  %s\n", inst.VIPName, inst.Mode, *inst.ID, strings.Join(inst.ConnectedTo, ", "))
	}
	return nil
}
