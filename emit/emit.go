// Package emit declares the Emitter contract external build-file
// generators implement, and a small named registry so a CLI can select
// one by name without importing every emitter package.
package emit

import (
	"sort"
	"sync"

	"go.forgebuild.dev/forge/project"
)

// Emitter turns a resolved set of projects into on-disk build files (a
// Ninja manifest, an MSVC project, or anything else). Implementations are
// collaborators external to the resolution/build core: this package only
// fixes the shape they present to a driver program.
type Emitter interface {
	// Name identifies the emitter for diagnostics and CLI selection.
	Name() string
	// Emit writes whatever files it produces for roots (and everything
	// roots transitively link to) under outputDir, for the named
	// configuration ("" selects the unnamed default configuration).
	Emit(env *project.Environment, roots []*project.Project, outputDir, configName string) error
}

var (
	mu       sync.Mutex
	registry = map[string]Emitter{}
)

// Register makes e available under e.Name() for later lookup by name.
func Register(e Emitter) {
	mu.Lock()
	defer mu.Unlock()
	registry[e.Name()] = e
}

// Lookup returns the emitter registered under name, or nil if none was.
func Lookup(name string) Emitter {
	mu.Lock()
	defer mu.Unlock()
	return registry[name]
}

// Names returns every registered emitter name, sorted.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
