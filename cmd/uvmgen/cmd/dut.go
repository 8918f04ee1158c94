package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceUVM/pkg/hdl/source"
)

var (
	moduleName  string
	listModules bool
)

var dutCmd = &cobra.Command{
	Use:   "dut <hdl-file>",
	Short: "Parse a design file and display its port map",
	Long: `Parse a SystemVerilog or VHDL file and display the port map used as
ground truth for direction inference.

Examples:
  uvmgen dut rtl/fifo.sv
  uvmgen dut --module fifo_top rtl/fifo.sv
  uvmgen dut --list rtl/core.vhd`,
	Args: cobra.ExactArgs(1),
	RunE: runDUT,
}

func init() {
	rootCmd.AddCommand(dutCmd)

	dutCmd.Flags().StringVarP(&moduleName, "module", "m", "",
		"module (entity) to display, defaults to the first one")
	dutCmd.Flags().BoolVarP(&listModules, "list", "l", false,
		"list the modules declared in the file")
}

func runDUT(cmd *cobra.Command, args []string) error {
	filename := args[0]
	out := cmd.OutOrStdout()

	if listModules {
		names, err := source.ModuleNames(filename)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	module, err := source.ParseFile(filename, moduleName)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Module: %s (%s)\n", module.Name, source.Detect(filename))
	fmt.Fprintf(out, "Ports:  %d\n\n", len(module.Ports))
	for _, name := range module.PortNames() {
		p := module.Ports[name]
		dims := make([]string, len(p.Dimensions))
		for i, r := range p.Dimensions {
			dims[i] = r.String()
		}
		fmt.Fprintf(out, "  %-20s : %-6s %s\n", name, p.Direction, strings.Join(dims, ""))
	}
	return nil
}
