// Command forge is a minimal driver over the resolution, toolchain and
// builder packages: it is not a build-description parser (that front end is
// an external collaborator by design) but a small, self-contained example
// showing how one wires source discovery, project resolution, toolchain
// processing and either direct execution or emitter output together.
package main

import (
	"fmt"
	"path/filepath"
	"runtime"

	"go.forgebuild.dev/forge/forgeconfig"
	"go.forgebuild.dev/forge/option"
	"go.forgebuild.dev/forge/project"
	"go.forgebuild.dev/forge/sourcescan"
	"go.forgebuild.dev/forge/toolchain"
)

func hostOS() project.OS {
	switch runtime.GOOS {
	case "windows":
		return project.Windows
	case "darwin":
		return project.Darwin
	default:
		return project.Linux
	}
}

// buildEnvironment discovers sources under srcDir and returns an
// Environment containing a single executable project built from them,
// scoped by every configuration cfg declares (or "debug"/"release" if it
// declares none). It registers a GCC-like toolchain as both "gcc" and the
// environment default, so -config alone is enough to get a working build.
func buildEnvironment(cfg forgeconfig.Config, srcDir string) (*project.Environment, []*project.Project, error) {
	env := project.NewEnvironment(hostOS())

	gcc := toolchain.NewGccLike("c++", "c++", "ar")
	toolchain.Register("gcc", gcc)
	env.DefaultToolchain = gcc

	configs := cfg.Configs
	if len(configs) == 0 {
		configs = []string{"debug", "release"}
	}
	for _, name := range configs {
		env.AddConfig(name)
	}

	scanned, err := sourcescan.List(srcDir, sourcescan.Options{Recurse: true})
	if err != nil {
		return nil, nil, fmt.Errorf("forge: scanning %s: %w", srcDir, err)
	}

	name := filepath.Base(filepath.Clean(srcDir))
	if name == "." || name == string(filepath.Separator) {
		name = "app"
	}

	app := project.NewProject(name, project.Executable)
	app.Config(project.Selector{}).Combine(scanned)
	*option.Get(app.Config(project.Selector{}), project.OutputDir) = cfg.OutputDir

	for _, cname := range configs {
		switch cname {
		case "release":
			option.Extend(app.Config(project.NewSelector(project.WithConfig(cname))), project.Features, "optimize")
		case "debug":
			option.Extend(app.Config(project.NewSelector(project.WithConfig(cname))), project.Features, "debuginfo")
		}
	}

	env.AddProject(app)

	return env, []*project.Project{app}, nil
}

// resolveCommands resolves every project reachable from roots against
// configName, runs their PostProcess hooks and toolchain, and returns the
// flattened command list the builder or an emitter would otherwise derive
// independently. Mirrors the resolve/postprocess/toolchain sequence
// ninjaemit runs internally, but collects commands instead of writing files.
func resolveCommands(env *project.Environment, roots []*project.Project, configName, outputDir string) ([]project.CommandEntry, error) {
	var all []project.CommandEntry

	for _, p := range project.Discover(roots) {
		resolved, err := p.Resolve(p.Type, configName, env.DefaultTargetOS)
		if err != nil {
			return nil, fmt.Errorf("forge: resolving %q: %w", p.Name, err)
		}
		*option.Get(resolved, project.DataDir) = outputDir

		postProcessors := option.Get(resolved, project.PostProcess)
		for i := 0; i < len(*postProcessors); i++ {
			(*postProcessors)[i](p, resolved)
		}

		if p.Type != nil {
			toolchainProvider := *option.Get(resolved, project.Toolchain)
			if toolchainProvider == nil {
				toolchainProvider = env.DefaultToolchain
			}
			if toolchainProvider == nil {
				return nil, fmt.Errorf("forge: no toolchain configured for project %q", p.Name)
			}
			if _, err := toolchainProvider.Process(p, resolved, configName, outputDir); err != nil {
				return nil, fmt.Errorf("forge: processing %q: %w", p.Name, err)
			}
		}

		all = append(all, *option.Get(resolved, project.Commands)...)
	}

	return all, nil
}
