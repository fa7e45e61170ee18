// Package ninjaemit is a thin Ninja-manifest sketch emitter: it resolves
// every project reachable from a set of roots, runs their toolchain's
// Process step, and writes one .ninja file per typed project (projects
// with no type get none) plus a root manifest that subninjas all of them. It does not attempt to be
// bit-for-bit compatible with any particular Ninja generator; it exists
// to demonstrate that the resolve → toolchain.Process → commands pipeline
// produces something an external build-file consumer could drive.
package ninjaemit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.forgebuild.dev/forge/emit"
	"go.forgebuild.dev/forge/option"
	"go.forgebuild.dev/forge/project"
)

func init() {
	emit.Register(New())
}

// Emitter writes Ninja manifests for a project graph.
type Emitter struct{}

// New returns a ready-to-use Ninja emitter.
func New() *Emitter {
	return &Emitter{}
}

func (*Emitter) Name() string {
	return "ninja"
}

func (e *Emitter) Emit(env *project.Environment, roots []*project.Project, outputDir, configName string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("ninjaemit: creating output directory: %w", err)
	}

	ordered := project.Discover(roots)

	var subninjas []string
	for _, p := range ordered {
		name, err := e.emitProject(env, p, outputDir, configName)
		if err != nil {
			return fmt.Errorf("ninjaemit: project %q: %w", p.Name, err)
		}
		if name != "" {
			subninjas = append(subninjas, name)
		}
	}

	rootPath := filepath.Join(outputDir, "build.ninja")
	var b strings.Builder
	b.WriteString("# generated manifest, do not edit by hand\n")
	for _, name := range subninjas {
		fmt.Fprintf(&b, "subninja %s\n", name)
	}
	return os.WriteFile(rootPath, []byte(b.String()), 0o644)
}

func (e *Emitter) emitProject(env *project.Environment, p *project.Project, outputDir, configName string) (string, error) {
	resolved, err := p.Resolve(p.Type, configName, env.DefaultTargetOS)
	if err != nil {
		return "", err
	}
	*option.Get(resolved, project.DataDir) = outputDir

	postProcessors := option.Get(resolved, project.PostProcess)
	for i := 0; i < len(*postProcessors); i++ {
		(*postProcessors)[i](p, resolved)
	}

	if p.Type == nil {
		return "", nil
	}

	toolchainProvider := *option.Get(resolved, project.Toolchain)
	if toolchainProvider == nil {
		toolchainProvider = env.DefaultToolchain
	}
	if toolchainProvider == nil {
		return "", fmt.Errorf("no toolchain configured for project %q", p.Name)
	}

	if _, err := toolchainProvider.Process(p, resolved, configName, outputDir); err != nil {
		return "", err
	}

	commands := *option.Get(resolved, project.Commands)
	if *p.Type == project.Command && len(commands) == 0 {
		return "", fmt.Errorf("command project %q has no commands", p.Name)
	}

	ninjaName := p.Name + ".ninja"
	path := filepath.Join(outputDir, ninjaName)

	var b strings.Builder
	for i, cmd := range commands {
		ruleName := fmt.Sprintf("%s_rule_%d", sanitize(p.Name), i)
		fmt.Fprintf(&b, "rule %s\n  command = %s\n  description = %s\n", ruleName, cmd.Command, cmd.Description)
		if cmd.DepFile != "" {
			fmt.Fprintf(&b, "  depfile = %s\n  deps = gcc\n", cmd.DepFile)
		}
		fmt.Fprintf(&b, "build %s: %s %s\n\n", strings.Join(cmd.Outputs, " "), ruleName, strings.Join(cmd.Inputs, " "))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", err
	}

	return ninjaName, nil
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, name)
}
