package project

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.forgebuild.dev/forge/option"
	"go.forgebuild.dev/forge/stringid"
)

// Project is a named node in the build graph: a bag of selector-scoped
// option collections plus links to other projects it depends on. A
// Project with a nil Type contributes options (include paths, defines,
// libraries) to whatever links against it but is never itself built —
// the grouping/filter-only role a build description uses for things like
// a shared "warnings" or "platform-defaults" project.
type Project struct {
	Name string
	Type *ProjectType

	Links []*Project

	// Configs maps a Selector to the option collection that applies when
	// that selector matches. The always-matching zero Selector holds a
	// project's unconditional local options; accessed the same way any
	// other entry is, through Config.
	Configs map[Selector]*option.Collection
}

// NewProject creates an empty project. typ is variadic only to emulate an
// optional project type: pass zero or one ProjectType.
func NewProject(name string, typ ...ProjectType) *Project {
	if len(typ) > 1 {
		panic("project: NewProject accepts at most one ProjectType")
	}
	p := &Project{
		Name:    name,
		Configs: map[Selector]*option.Collection{},
	}
	if len(typ) == 1 {
		t := typ[0]
		p.Type = &t
	}
	return p
}

// Link records that p depends on other: other's Public/PublicOnly options
// flow into anything that resolves p, and other is itself resolved and
// built (if it has a type) as part of building p's graph. Link returns p
// so calls can be chained.
func (p *Project) Link(other *Project) *Project {
	p.Links = append(p.Links, other)
	return p
}

// Config returns the option collection for selector, creating an empty one
// the first time selector is used. The zero Selector names a project's
// default, unconditional local options.
func (p *Project) Config(selector Selector) *option.Collection {
	if p.Configs == nil {
		p.Configs = map[Selector]*option.Collection{}
	}
	c, ok := p.Configs[selector]
	if !ok {
		c = option.NewCollection()
		p.Configs[selector] = c
	}
	return c
}

// Get is a shortcut for Config(Selector{}) followed by option.Get: the
// common case of reading or writing a project's default local options.
func Get[T any](p *Project, opt option.Option[T]) *T {
	return option.Get(p.Config(Selector{}), opt)
}

// CycleError reports a dependency cycle discovered while resolving a
// project graph. The source language this package's algorithm is modeled
// on does not detect this case and recurses without bound; this
// implementation fails cleanly instead.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("project: dependency cycle: %s", strings.Join(e.Cycle, " -> "))
}

// Resolve walks p's link graph, combining every option collection whose
// selector matches (projectType, configName, targetOS), and returns the
// deduplicated result. projectType may be nil to match only selectors that
// don't filter on project type.
func (p *Project) Resolve(projectType *ProjectType, configName string, targetOS OS) (*option.Collection, error) {
	configID := stringid.Intern(configName)
	result, err := p.internalResolve(projectType, configID, targetOS, true, nil)
	if err != nil {
		return nil, err
	}
	result.Deduplicate()
	return result, nil
}

func (p *Project) internalResolve(projectType *ProjectType, configID stringid.ID, targetOS OS, local bool, stack []*Project) (*option.Collection, error) {
	for _, q := range stack {
		if q == p {
			var names []string
			for _, s := range stack {
				names = append(names, s.Name)
			}
			return nil, &CycleError{Cycle: append(names, p.Name)}
		}
	}
	stack = append(stack, p)

	result := option.NewCollection()

	for _, link := range p.Links {
		linked, err := link.internalResolve(projectType, configID, targetOS, false, stack)
		if err != nil {
			return nil, err
		}
		result.Combine(linked)
	}

	var selectors []Selector
	for sel := range p.Configs {
		if local {
			if !sel.matchesLocal() {
				continue
			}
		} else {
			if !sel.matchesLinked() {
				continue
			}
		}
		if !sel.matchesProjectType(projectType) {
			continue
		}
		if !sel.matchesConfig(configID) {
			continue
		}
		if !sel.matchesTargetOS(targetOS) {
			continue
		}
		selectors = append(selectors, sel)
	}
	sort.Slice(selectors, func(i, j int) bool { return selectors[i].Less(selectors[j]) })

	for _, sel := range selectors {
		result.Combine(p.Configs[sel])
	}

	return result, nil
}

// OutputPath computes where p's build product should be written, using
// resolved's OutputPath if explicitly set, otherwise assembling
// OutputDir/(OutputPrefix+stem+OutputSuffix+OutputExtension) with stem
// defaulting to p.Name.
func (p *Project) OutputPath(resolved *option.Collection) string {
	if path := *option.Get(resolved, OutputPath); path != "" {
		return path
	}

	stem := *option.Get(resolved, OutputStem)
	if stem == "" {
		stem = p.Name
	}

	dir := *option.Get(resolved, OutputDir)
	prefix := *option.Get(resolved, OutputPrefix)
	suffix := *option.Get(resolved, OutputSuffix)
	ext := *option.Get(resolved, OutputExtension)

	return filepath.Join(dir, prefix+stem+suffix+ext)
}

// Discover performs a link-first (dependencies before dependents)
// traversal of p's graph, appending each project the first time it is
// reached to ordered, and recording visits in discovered so shared
// dependencies are only emitted once.
func (p *Project) Discover(discovered map[*Project]bool, ordered *[]*Project) {
	for _, link := range p.Links {
		link.Discover(discovered, ordered)
	}
	if !discovered[p] {
		discovered[p] = true
		*ordered = append(*ordered, p)
	}
}
