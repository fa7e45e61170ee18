package project

import "go.forgebuild.dev/forge/option"

// CommandEntry describes one shell command a toolchain or a build
// description wants run: its command line, the files it reads and writes,
// the directory it runs in, an optional Make-style depfile it emits, and a
// human-readable description for progress reporting.
type CommandEntry struct {
	Command          string
	Inputs           []string
	Outputs          []string
	WorkingDirectory string
	DepFile          string
	Description      string
}

// PostProcessor is a hook run against a project's resolved options after
// resolve and before its commands are consumed by an emitter or builder.
// A PostProcessor may append more commands, or even append more
// PostProcessors to the PostProcess option it was read from — callers
// iterating PostProcess must therefore re-check its length on every step
// rather than ranging over a snapshot.
type PostProcessor func(p *Project, resolved *option.Collection)

// ToolchainProvider turns a resolved project's options into the concrete
// commands needed to build it. The default GCC/clang-like implementation
// lives in package toolchain; the interface is declared here so the
// Toolchain option can hold it without toolchain importing project.
type ToolchainProvider interface {
	GetCompiler(p *Project, resolved *option.Collection, pathOffset string) string
	GetCommonCompilerFlags(p *Project, resolved *option.Collection, pathOffset string) string
	GetCompilerFlags(p *Project, resolved *option.Collection, pathOffset, input, output string) string

	GetLinker(p *Project, resolved *option.Collection, pathOffset string) string
	GetCommonLinkerFlags(p *Project, resolved *option.Collection, pathOffset string) string
	GetLinkerFlags(p *Project, resolved *option.Collection, pathOffset string, inputs []string, output string) string

	// Process appends the commands needed to build p to resolved[Commands]
	// and returns the paths p ultimately produces (empty for project types
	// the provider does not build, e.g. pure grouping projects).
	Process(p *Project, resolved *option.Collection, configName string, workingDir string) ([]string, error)
}

// BundleEntry names a file to be copied into a packaged output (an app
// bundle, a plugin directory) at a target-relative path.
type BundleEntry struct {
	Source string
	Target string
}

// Standard options. Every build description and toolchain reads and
// writes these through the generic Collection accessors; none of them are
// special-cased by the resolution algorithm.
var (
	Platform              = option.New[string]("Platform")
	IncludePaths          = option.New[[]string]("IncludePaths")
	Files                 = option.New[[]string]("Files")
	GeneratorDependencies = option.New[[]string]("GeneratorDependencies")
	Libs                  = option.New[[]string]("Libs")
	Defines               = option.New[[]string]("Defines")
	Features              = option.New[[]string]("Features")
	Frameworks            = option.New[[]string]("Frameworks")
	BundleContents        = option.New[[]BundleEntry]("BundleContents")

	OutputDir       = option.New[string]("OutputDir")
	OutputStem      = option.New[string]("OutputStem")
	OutputExtension = option.New[string]("OutputExtension")
	OutputPrefix    = option.New[string]("OutputPrefix")
	OutputSuffix    = option.New[string]("OutputSuffix")
	OutputPath      = option.New[string]("OutputPath")

	BuildPch  = option.New[string]("BuildPch")
	ImportPch = option.New[string]("ImportPch")

	PostProcess = option.New[[]PostProcessor]("PostProcess")
	Commands    = option.New[[]CommandEntry]("Commands")
	Toolchain   = option.New[ToolchainProvider]("Toolchain")
	DataDir     = option.New[string]("DataDir")

	// LinkedOutputs accumulates static-library archive paths a project
	// exposes to its public linkage consumers; a leading underscore marks
	// it, like the options around it, as toolchain bookkeeping rather than
	// something a build description sets directly.
	LinkedOutputs = option.New[[]string]("_LinkedOutputs")
)
