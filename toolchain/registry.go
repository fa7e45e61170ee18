// Package toolchain implements project.ToolchainProvider for
// GCC/clang-like compiler and linker command lines, plus a small registry
// build descriptions use to discover available toolchains by name.
package toolchain

import (
	"sort"
	"sync"

	"go.forgebuild.dev/forge/project"
)

var (
	registryMu sync.Mutex
	registry   = map[string]project.ToolchainProvider{}
)

// Register makes a toolchain available under name, for later lookup by
// name (e.g. from a --toolchain= CLI flag). Registering the same name
// twice replaces the previous provider, so build descriptions can
// override a default toolchain registered by an earlier import.
func Register(name string, provider project.ToolchainProvider) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = provider
}

// Lookup returns the toolchain registered under name, or nil if none was.
func Lookup(name string) project.ToolchainProvider {
	registryMu.Lock()
	defer registryMu.Unlock()
	return registry[name]
}

// Names returns every registered toolchain name, sorted.
func Names() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
