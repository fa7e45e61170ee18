package toolchain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.forgebuild.dev/forge/option"
	"go.forgebuild.dev/forge/project"
)

// sourceExtensions lists the file extensions GccLike treats as compilable
// sources; anything else in the Files option (headers, build description
// files) is ignored by Process.
//
// TODO: make this configurable per-project instead of hardcoded once a
// second source language needs a different set.
var sourceExtensions = map[string]bool{
	".c":   true,
	".cc":  true,
	".cpp": true,
	".mm":  true,
}

var gccFeatureFlags = map[string]string{
	"c++17":     " -std=c++17",
	"c++20":     " -std=c++20",
	"libc++":    " -stdlib=libc++",
	"optimize":  " -O3",
	"debuginfo": " -g",
}

// GccLike is a project.ToolchainProvider for compilers and linkers that
// accept GCC/clang-style command lines: cc/c++/clang for compilation,
// ld-compatible linking, ar-compatible archiving.
type GccLike struct {
	Compiler string
	Linker   string
	Archiver string
}

// NewGccLike returns a GccLike toolchain driving the given compiler,
// linker and archiver executables.
func NewGccLike(compiler, linker, archiver string) *GccLike {
	return &GccLike{Compiler: compiler, Linker: linker, Archiver: archiver}
}

func (g *GccLike) GetCompiler(p *project.Project, resolved *option.Collection, pathOffset string) string {
	return g.Compiler
}

func (g *GccLike) GetCommonCompilerFlags(p *project.Project, resolved *option.Collection, pathOffset string) string {
	var flags strings.Builder

	for _, define := range *option.Get(resolved, project.Defines) {
		fmt.Fprintf(&flags, " -D\"%s\"", define)
	}
	for _, path := range *option.Get(resolved, project.IncludePaths) {
		fmt.Fprintf(&flags, " -I\"%s\"", filepath.Join(pathOffset, path))
	}
	if *option.Get(resolved, project.Platform) == "x64" {
		flags.WriteString(" -m64 -arch x86_64")
	}
	for _, feature := range *option.Get(resolved, project.Features) {
		if f, ok := gccFeatureFlags[feature]; ok {
			flags.WriteString(f)
		}
	}

	return flags.String()
}

func (g *GccLike) GetCompilerFlags(p *project.Project, resolved *option.Collection, pathOffset, input, output string) string {
	return fmt.Sprintf(" -MMD -MF %s.d -c -o %s %s", output, output, input)
}

func (g *GccLike) GetLinker(p *project.Project, resolved *option.Collection, pathOffset string) string {
	if p.Type != nil && *p.Type == project.StaticLib {
		return g.Archiver
	}
	return g.Linker
}

func (g *GccLike) GetCommonLinkerFlags(p *project.Project, resolved *option.Collection, pathOffset string) string {
	if p.Type == nil {
		return ""
	}
	var flags strings.Builder
	switch *p.Type {
	case project.StaticLib:
		flags.WriteString(" -rcs")
	case project.Executable, project.SharedLib:
		for _, path := range *option.Get(resolved, project.Libs) {
			fmt.Fprintf(&flags, " %s", filepath.Join(pathOffset, path))
		}
		for _, framework := range *option.Get(resolved, project.Frameworks) {
			fmt.Fprintf(&flags, " -framework %s", framework)
		}
		if *p.Type == project.SharedLib {
			if contains(*option.Get(resolved, project.Features), "bundle") {
				flags.WriteString(" -bundle")
			} else {
				flags.WriteString(" -shared")
			}
		}
	default:
		// Command projects never reach here: Process returns early for
		// them before any linker flags are computed.
	}
	return flags.String()
}

func (g *GccLike) GetLinkerFlags(p *project.Project, resolved *option.Collection, pathOffset string, inputs []string, output string) string {
	if p.Type == nil {
		return ""
	}
	var flags strings.Builder
	switch *p.Type {
	case project.StaticLib:
		fmt.Fprintf(&flags, " %q", output)
		for _, input := range inputs {
			fmt.Fprintf(&flags, " %q", input)
		}
	case project.Executable, project.SharedLib:
		fmt.Fprintf(&flags, " -o %q", output)
		for _, input := range inputs {
			fmt.Fprintf(&flags, " %q", input)
		}
	}
	return flags.String()
}

// Process appends the PCH, compile and link/archive commands needed to
// build p to resolved's Commands option, and returns the paths p
// produces. Projects with no type, or a type this toolchain doesn't build
// directly, produce nothing.
func (g *GccLike) Process(p *project.Project, resolved *option.Collection, configName string, workingDir string) ([]string, error) {
	if p.Type == nil {
		return nil, nil
	}
	switch *p.Type {
	case project.Executable, project.SharedLib, project.StaticLib:
	default:
		return nil, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("toolchain: resolving working directory: %w", err)
	}
	pathOffset, err := filepath.Rel(cwd, workingDir)
	if err != nil {
		pathOffset = workingDir
	}

	dataDir := *option.Get(resolved, project.DataDir)

	compiler := g.GetCompiler(p, resolved, pathOffset)
	commonCompilerFlags := g.GetCommonCompilerFlags(p, resolved, pathOffset)
	linker := g.GetLinker(p, resolved, pathOffset)
	commonLinkerFlags := g.GetCommonLinkerFlags(p, resolved, pathOffset)

	buildPch := *option.Get(resolved, project.BuildPch)
	importPch := *option.Get(resolved, project.ImportPch)

	if buildPch != "" {
		input := buildPch
		inputStr := filepath.Join(pathOffset, input)
		output := filepath.Join(dataDir, "pch", input+".pch")
		outputStr := filepath.Join(pathOffset, output)

		option.Extend(resolved, project.Commands, project.CommandEntry{
			Command:          compiler + commonCompilerFlags + " -x c++-header -Xclang -emit-pch" + g.GetCompilerFlags(p, resolved, pathOffset, inputStr, outputStr),
			Inputs:           []string{input},
			Outputs:          []string{output},
			WorkingDirectory: workingDir,
			DepFile:          output + ".d",
			Description:      fmt.Sprintf("Compiling %s PCH: %s", p.Name, input),
		})
	}

	var pchInputs []string
	if importPch != "" {
		input := filepath.Join(dataDir, "pch", importPch+".pch")
		inputStr := filepath.Join(pathOffset, input)
		commonCompilerFlags += " -Xclang -include-pch -Xclang " + inputStr
		pchInputs = append(pchInputs, input)
	}

	var linkerInputs []string
	for _, input := range *option.Get(resolved, project.Files) {
		if !sourceExtensions[filepath.Ext(input)] {
			continue
		}

		inputStr := filepath.Join(pathOffset, input)
		output := filepath.Join(dataDir, "obj", p.Name, input+".o")
		outputStr := filepath.Join(pathOffset, output)

		command := project.CommandEntry{
			Command:          compiler + commonCompilerFlags + g.GetCompilerFlags(p, resolved, pathOffset, inputStr, outputStr),
			Inputs:           append([]string{input}, pchInputs...),
			Outputs:          []string{output},
			WorkingDirectory: workingDir,
			DepFile:          output + ".d",
			Description:      fmt.Sprintf("Compiling %s: %s", p.Name, input),
		}
		option.Extend(resolved, project.Commands, command)

		linkerInputs = append(linkerInputs, output)
	}

	var outputs []string

	if linker != "" {
		linkerInputs = append(linkerInputs, *option.Get(resolved, project.LinkedOutputs)...)

		linkerInputStrs := make([]string, 0, len(linkerInputs))
		for _, input := range linkerInputs {
			linkerInputStrs = append(linkerInputStrs, filepath.Join(pathOffset, input))
		}

		output := p.OutputPath(resolved)
		outputStr := filepath.Join(pathOffset, output)

		option.Extend(resolved, project.Commands, project.CommandEntry{
			Command:          linker + commonLinkerFlags + g.GetLinkerFlags(p, resolved, pathOffset, linkerInputStrs, outputStr),
			Inputs:           linkerInputs,
			Outputs:          []string{output},
			WorkingDirectory: workingDir,
			Description:      fmt.Sprintf("Linking %s: %s", p.Name, output),
		})

		outputs = append(outputs, output)

		if *p.Type == project.StaticLib {
			publicForConfig := project.NewSelector(project.WithTransitivity(project.Public), project.WithConfig(configName))
			option.Extend(p.Config(publicForConfig), project.LinkedOutputs, output)
		}
	}

	return outputs, nil
}

func contains(s []string, v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}
