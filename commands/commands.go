// Package commands provides small project.CommandEntry factories for
// filesystem operations a build description needs often enough that
// spelling out the shell command by hand every time would be noise.
package commands

import (
	"fmt"
	"path/filepath"

	"go.forgebuild.dev/forge/project"
)

// Copy returns a CommandEntry that creates to's parent directory (so the
// copy has somewhere to write) and copies from to to.
func Copy(from, to string) project.CommandEntry {
	return project.CommandEntry{
		Command:     fmt.Sprintf("mkdir -p %q && cp %q %q", filepath.Dir(to), from, to),
		Inputs:      []string{from},
		Outputs:     []string{to},
		Description: fmt.Sprintf("Copying %q -> %q", from, to),
	}
}

// Mkdir returns a CommandEntry that creates dir (and its parents) if it
// doesn't already exist.
func Mkdir(dir string) project.CommandEntry {
	return project.CommandEntry{
		Command:     fmt.Sprintf("mkdir -p %q", dir),
		Outputs:     []string{dir},
		Description: fmt.Sprintf("Creating directory %q", dir),
	}
}
