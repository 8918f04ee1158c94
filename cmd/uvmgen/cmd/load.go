package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceUVM/internal/config"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/diag"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/hdl/source"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/pipeline"
)

var (
	projectPath   string
	instancesPath string
)

// addInputFlags binds the flags locating the configuration files.
func addInputFlags(c *cobra.Command) {
	c.Flags().StringVarP(&projectPath, "project", "p", config.DefaultProjectPath,
		"path to the project file")
	c.Flags().StringVarP(&instancesPath, "instances", "i", config.DefaultInstancesPath,
		"path to the instances file")
}

// loadModel reads every input and runs the pipeline on it.
func loadModel(vipPaths []string) (*pipeline.Model, *diag.Collector, *config.Project, error) {
	loader, err := config.NewLoader()
	if err != nil {
		return nil, nil, nil, err
	}

	logger.Info("reading project", slog.String("path", projectPath))
	project, err := loader.Project(projectPath)
	if err != nil {
		return nil, nil, nil, err
	}

	logger.Info("reading instances", slog.String("path", instancesPath))
	instances, err := loader.Instances(instancesPath)
	if err != nil {
		return nil, nil, nil, err
	}

	templates, err := loader.VIPs(vipPaths...)
	if err != nil {
		return nil, nil, nil, err
	}

	logger.Info("parsing design", slog.String("path", project.DUT.Path))
	dut, err := source.ParseFile(project.DUT.Path, project.DUT.Name)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to parse design: %w", err)
	}
	project.DUT.Name = dut.Name

	model, diags, err := pipeline.Build(pipeline.Input{
		Templates: templates,
		Instances: instances,
		DUT:       dut,
	}, logger)
	if err != nil {
		return nil, diags, project, err
	}
	return model, diags, project, nil
}

func summary(d *diag.Collector) string {
	return fmt.Sprintf("%d error(s), %d warning(s)", d.Count(diag.Error), d.Count(diag.Warning))
}
