package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceUVM/internal/config"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/render"
)

var (
	outputDir    string
	templatesDir string
	noTop        bool
	noVIPs       bool
	noSelfTest   bool
	dumpModel    string
	strict       bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <vip-file>...",
	Short: "Generate the verification environment",
	Long: `Resolve the VIPs against the instances and the design under test, then
write the VIP, top, test, harness and run script files.

Examples:
  uvmgen generate vips/*.toml
  uvmgen generate -p cfg/project.toml -i cfg/instances.toml -o out vips/*.toml
  uvmgen generate --no-top --dump-model model.yaml vips/bus.toml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addInputFlags(generateCmd)

	f := generateCmd.Flags()
	f.StringVarP(&outputDir, "output", "o", config.DefaultOutputDir, "output directory")
	f.StringVarP(&templatesDir, "templates", "t", "", "directory of templates overriding the built-in ones")
	f.BoolVar(&noTop, "no-top", false, "disable top generator")
	f.BoolVar(&noVIPs, "no-vips", false, "disable vips generator")
	f.BoolVar(&noSelfTest, "no-self-test", false, "disable self-test generator")
	f.StringVar(&dumpModel, "dump-model", "", "write the resolved model as YAML to this file")
	f.BoolVar(&strict, "strict", false, "fail without rendering when errors were reported")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	model, diags, project, err := loadModel(args)
	if err != nil {
		return err
	}

	if dumpModel != "" {
		if err := render.DumpModelFile(dumpModel, model); err != nil {
			return err
		}
		logger.Info("model written", slog.String("path", dumpModel))
	}

	if strict && diags.HasErrors() {
		return fmt.Errorf("generation aborted: %s", summary(diags))
	}

	r, err := render.New(render.Options{
		TemplateDir: templatesDir,
		Header:      project.GenerateFileHeader,
		SkipVIPs:    noVIPs,
		SkipTop:     noTop,
		Top: render.Top{
			DefaultSequenceRepeat: project.TopDefaultSequence,
			DUTName:               project.DUT.Name,
			DUTPath:               project.DUT.Path,
			DUTClock:              project.DUT.Clock,
			DUTReset:              project.DUT.Reset,
		},
	}, logger)
	if err != nil {
		return err
	}

	written, err := r.Render(model, outputDir)
	if err != nil {
		return err
	}
	if !noSelfTest {
		files, err := r.RenderSelfTests(model, outputDir)
		if err != nil {
			return err
		}
		written = append(written, files...)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d file(s) in %s (%s)\n", len(written), outputDir, summary(diags))
	return nil
}
