// Package render projects a resolved testbench model onto SystemVerilog UVM
// source files. Templates are embedded; a directory can override any of them
// by relative path.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/OpenTraceLab/OpenTraceUVM/pkg/pipeline"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/vip"
)

//go:embed templates
var embedded embed.FS

const templateSuffix = ".tmpl"

// Component file groups, in the order they are written.
var (
	VIPComponents  = []string{"agent", "config", "coverage", "driver", "if", "monitor", "pkg", "seq_lib", "sequencer", "tx"}
	TopComponents  = []string{"config", "env", "pkg", "scoreboard", "seq_lib"}
	TestComponents = []string{"test", "test_pkg"}
	TBComponents   = []string{"tb", "th"}
)

// Options control what is generated.
type Options struct {
	// TemplateDir overrides embedded templates with files of the same
	// relative path, e.g. vip/driver.sv.tmpl.
	TemplateDir string
	Header      bool
	Top         Top
	SkipVIPs    bool
	SkipTop     bool
}

// Renderer writes the generated tree.
type Renderer struct {
	tmpl   *template.Template
	opts   Options
	logger *slog.Logger
}

// New loads the template set.
func New(opts Options, logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Top.Name == "" {
		opts.Top.Name = "top"
	}

	root := template.New("uvmgen").Funcs(funcMap())
	if err := parseFS(root, embedded, "templates"); err != nil {
		return nil, fmt.Errorf("render: embedded templates: %w", err)
	}
	if opts.TemplateDir != "" {
		if err := parseFS(root, os.DirFS(opts.TemplateDir), "."); err != nil {
			return nil, fmt.Errorf("render: templates in %s: %w", opts.TemplateDir, err)
		}
	}

	return &Renderer{
		tmpl:   root,
		opts:   opts,
		logger: logger.With(slog.String("component", "render")),
	}, nil
}

func parseFS(root *template.Template, fsys fs.FS, base string) error {
	return fs.WalkDir(fsys, base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, templateSuffix) {
			return nil
		}
		text, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		name := path
		if base != "." {
			name = strings.TrimPrefix(path, base+"/")
		}
		if _, err := root.New(name).Parse(string(text)); err != nil {
			return err
		}
		return nil
	})
}

// Templates lists the names of every loaded template.
func (r *Renderer) Templates() []string {
	var names []string
	for _, t := range r.tmpl.Templates() {
		if strings.HasSuffix(t.Name(), templateSuffix) {
			names = append(names, t.Name())
		}
	}
	return names
}

type job struct {
	template string
	output   string
	mode     os.FileMode
	vip      *vip.VIP
}

func (r *Renderer) jobs(m *pipeline.Model, top Top) []job {
	var out []job
	if !r.opts.SkipVIPs {
		for _, v := range m.VIPs {
			for _, c := range VIPComponents {
				out = append(out, job{
					template: "vip/" + c + ".sv" + templateSuffix,
					output:   filepath.Join("vip", v.Name, v.Name+"_"+c+".sv"),
					mode:     0o644,
					vip:      v,
				})
			}
		}
	}
	if !r.opts.SkipTop {
		groups := []struct {
			dir        string
			components []string
		}{
			{"top", TopComponents},
			{"top/test", TestComponents},
			{"top/tb", TBComponents},
		}
		for _, g := range groups {
			for _, c := range g.components {
				out = append(out, job{
					template: g.dir + "/" + c + ".sv" + templateSuffix,
					output:   filepath.Join(filepath.FromSlash(g.dir), top.Name+"_"+c+".sv"),
					mode:     0o644,
				})
			}
		}
		out = append(out, job{
			template: "bin/run.sh" + templateSuffix,
			output:   filepath.Join("bin", "run.sh"),
			mode:     0o755,
		})
	}
	return out
}

// Render writes the files of m under outDir and returns their paths.
func (r *Renderer) Render(m *pipeline.Model, outDir string) ([]string, error) {
	top := r.opts.Top
	if m.DUT != nil && top.DUTName == "" {
		top.DUTName = m.DUT.Name
	}
	top.SelfTest = m.SelfTest
	return r.render(m, top, outDir)
}

// RenderSelfTests writes one stand-alone environment per template of m under
// outDir/self_test/<vip>.
func (r *Renderer) RenderSelfTests(m *pipeline.Model, outDir string) ([]string, error) {
	var written []string
	for _, st := range pipeline.SelfTests(m) {
		top := r.opts.Top
		top.DUTName = st.DUT.Name
		top.DUTPath = ""
		top.SelfTest = true
		dir := filepath.Join(outDir, "self_test", st.VIPs[0].Name)
		files, err := r.render(st, top, dir)
		if err != nil {
			return written, err
		}
		written = append(written, files...)
	}
	return written, nil
}

func (r *Renderer) render(m *pipeline.Model, top Top, outDir string) ([]string, error) {
	ctx := newContext(m, top, r.opts.Header)

	var written []string
	for _, j := range r.jobs(m, top) {
		path := filepath.Join(outDir, j.output)
		var buf bytes.Buffer
		if err := r.tmpl.ExecuteTemplate(&buf, j.template, ctx.with(filepath.Base(path), j.vip)); err != nil {
			return written, fmt.Errorf("render: %s: %w", j.template, err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return written, fmt.Errorf("render: %w", err)
		}
		if err := os.WriteFile(path, buf.Bytes(), j.mode); err != nil {
			return written, fmt.Errorf("render: %w", err)
		}
		r.logger.Debug("wrote file", slog.String("path", path))
		written = append(written, path)
	}
	r.logger.Info("rendered", slog.String("dir", outDir), slog.Int("files", len(written)))
	return written, nil
}
