package project

import "sort"

// Environment owns the set of named projects and named configurations a
// build description declares, and the defaults (target OS, toolchain)
// those projects resolve against. It plays the same root-object role the
// bootstrapper's top-level build state does in the CLI collaborator this
// package leaves external: something constructs an Environment, populates
// it, and hands it to an emitter or builder.
type Environment struct {
	Projects map[string]*Project
	Configs  []string

	DefaultTargetOS  OS
	DefaultToolchain ToolchainProvider
}

// NewEnvironment returns an empty Environment targeting targetOS.
func NewEnvironment(targetOS OS) *Environment {
	return &Environment{
		Projects:        map[string]*Project{},
		DefaultTargetOS: targetOS,
	}
}

// AddProject registers p under its name. Registering two projects with the
// same name is a programmer error and panics, since downstream lookups by
// name would otherwise silently pick one.
func (e *Environment) AddProject(p *Project) *Project {
	if _, exists := e.Projects[p.Name]; exists {
		panic("project: duplicate project name " + p.Name)
	}
	if e.Projects == nil {
		e.Projects = map[string]*Project{}
	}
	e.Projects[p.Name] = p
	return p
}

// AddConfig declares a named configuration (e.g. "debug", "release")
// available for resolution. Order is preserved for CLI listing purposes.
func (e *Environment) AddConfig(name string) {
	for _, c := range e.Configs {
		if c == name {
			return
		}
	}
	e.Configs = append(e.Configs, name)
}

// OrderedProjects returns every registered project, sorted by name, for
// deterministic iteration in emitters and the CLI.
func (e *Environment) OrderedProjects() []*Project {
	names := make([]string, 0, len(e.Projects))
	for name := range e.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	ordered := make([]*Project, 0, len(names))
	for _, name := range names {
		ordered = append(ordered, e.Projects[name])
	}
	return ordered
}

// Discover returns the link-first topological ordering of every project
// reachable from roots, each appearing exactly once.
func Discover(roots []*Project) []*Project {
	discovered := map[*Project]bool{}
	var ordered []*Project
	for _, root := range roots {
		root.Discover(discovered, &ordered)
	}
	return ordered
}
