package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceUVM/internal/config"
)

const dutSource = `
module fifo (
	input  logic       clk,
	input  logic       rst_n,
	input  logic [7:0] in_data,
	input  logic       in_valid,
	output logic       in_ready,
	output logic [7:0] out_data,
	output logic       out_valid,
	input  logic       out_ready
);
endmodule
`

const streamVIP = `
ports = ["data [7:0]", "valid", "ready"]
clock = "clk"
reset = "rst_n"

[item]
members = ["rand logic[7:0] data"]
constraints = ["data != 0;"]
`

const goodInstances = `
[[instances]]
vip_name = "stream"
connected_to = ["in_data", "in_valid", "in_ready"]

[[instances]]
vip_name = "stream"
mode = "Responder"
connected_to = ["out_data", "out_valid", "out_ready"]
`

const duplicateInstances = `
[[instances]]
vip_name = "stream"
id = 0
connected_to = ["in_data", "in_valid", "in_ready"]

[[instances]]
vip_name = "stream"
id = 0
connected_to = ["out_data", "out_valid", "out_ready"]
`

type fixture struct {
	dir       string
	project   string
	instances string
	vip       string
}

func newFixture(t *testing.T, instances string) fixture {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
		return path
	}
	write("dut.sv", dutSource)
	return fixture{
		dir:       dir,
		project:   write("project.toml", "[dut]\npath = \"dut.sv\"\n"),
		instances: write("instances.toml", instances),
		vip:       write("stream.toml", streamVIP),
	}
}

// resetFlags restores every flag global so runs do not leak into each other.
func resetFlags() {
	verbose = false
	quiet = true
	projectPath = config.DefaultProjectPath
	instancesPath = config.DefaultInstancesPath
	outputDir = config.DefaultOutputDir
	templatesDir = ""
	noTop = false
	noVIPs = false
	noSelfTest = false
	dumpModel = ""
	strict = false
	moduleName = ""
	listModules = false
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append(args, "-q"))
	err := rootCmd.Execute()
	return out.String(), err
}

// TestGenerateE2E tests the generate command end-to-end
func TestGenerateE2E(t *testing.T) {
	f := newFixture(t, goodInstances)
	out := filepath.Join(f.dir, "out")
	model := filepath.Join(f.dir, "model.yaml")

	output, err := execute(t, "generate", "-p", f.project, "-i", f.instances, "-o", out,
		"--dump-model", model, f.vip)
	if err != nil {
		t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
	}

	if !strings.Contains(output, "Generated 40 file(s)") {
		t.Errorf("Output missing file count\nGot:\n%s", output)
	}
	if !strings.Contains(output, "0 error(s), 0 warning(s)") {
		t.Errorf("Output missing clean summary\nGot:\n%s", output)
	}

	for _, path := range []string{
		filepath.Join(out, "vip", "stream", "stream_if.sv"),
		filepath.Join(out, "top", "top_env.sv"),
		filepath.Join(out, "top", "tb", "top_th.sv"),
		filepath.Join(out, "bin", "run.sh"),
		filepath.Join(out, "self_test", "stream", "top", "tb", "top_th.sv"),
		model,
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected %s to exist: %v", path, err)
		}
	}

	data, err := os.ReadFile(model)
	if err != nil {
		t.Fatalf("Failed to read model: %v", err)
	}
	if !strings.Contains(string(data), "name: fifo") {
		t.Errorf("Model dump missing design name\nGot:\n%s", data)
	}
}

func TestGenerateSkipFlagsE2E(t *testing.T) {
	f := newFixture(t, goodInstances)
	out := filepath.Join(f.dir, "out")

	output, err := execute(t, "generate", "-p", f.project, "-i", f.instances, "-o", out,
		"--no-top", "--no-self-test", f.vip)
	if err != nil {
		t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Generated 10 file(s)") {
		t.Errorf("Output missing file count\nGot:\n%s", output)
	}
	if _, err := os.Stat(filepath.Join(out, "top")); !os.IsNotExist(err) {
		t.Errorf("Expected no top directory, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "self_test")); !os.IsNotExist(err) {
		t.Errorf("Expected no self_test directory, got %v", err)
	}
}

func TestGenerateStrictE2E(t *testing.T) {
	f := newFixture(t, duplicateInstances)
	out := filepath.Join(f.dir, "out")

	if _, err := execute(t, "generate", "-p", f.project, "-i", f.instances, "-o", out, "--strict", f.vip); err == nil {
		t.Fatal("Expected error but got none")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("Expected nothing written, got %v", err)
	}
}

// TestCheckE2E tests the check command end-to-end
func TestCheckE2E(t *testing.T) {
	tests := []struct {
		name        string
		instances   string
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "clean topology",
			instances:   goodInstances,
			wantContain: []string{"0 error(s), 0 warning(s)"},
		},
		{
			name:      "duplicate identifiers",
			instances: duplicateInstances,
			wantErr:   true,
			wantContain: []string{
				"error: allocator: already registered ID 0 for mode Controller of vip stream",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.instances)
			output, err := execute(t, "check", "-p", f.project, "-i", f.instances, f.vip)

			if tt.wantErr && err == nil {
				t.Errorf("Expected error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v\nOutput: %s", err, output)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
		})
	}
}

func TestIDsE2E(t *testing.T) {
	f := newFixture(t, goodInstances)
	output, err := execute(t, "ids", "-p", f.project, "-i", f.instances, f.vip)
	if err != nil {
		t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
	}
	for _, want := range []string{"CONNECTED TO", "Controller", "Responder", "in_data, in_valid, in_ready"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
		}
	}
}

// TestDUTE2E tests the dut command end-to-end
func TestDUTE2E(t *testing.T) {
	f := newFixture(t, goodInstances)
	dut := filepath.Join(f.dir, "dut.sv")

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "port map",
			args:        []string{"dut", dut},
			wantContain: []string{"Module: fifo (SystemVerilog)", "Ports:  8", "in_data", "[7:0]", "output"},
		},
		{
			name:        "list modules",
			args:        []string{"dut", "--list", dut},
			wantContain: []string{"fifo"},
		},
		{
			name:    "unknown module",
			args:    []string{"dut", "--module", "nope", dut},
			wantErr: true,
		},
		{
			name:    "missing file",
			args:    []string{"dut", filepath.Join(f.dir, "missing.sv")},
			wantErr: true,
		},
		{
			name:    "missing argument",
			args:    []string{"dut"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := execute(t, tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
		})
	}
}
