package toolchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.forgebuild.dev/forge/option"
	"go.forgebuild.dev/forge/project"
)

func resolveProject(t *testing.T, p *project.Project) *option.Collection {
	t.Helper()
	resolved, err := p.Resolve(p.Type, "", "")
	require.NoError(t, err)
	return resolved
}

func TestGccLikeProcessExecutableCompilesAndLinks(t *testing.T) {
	gcc := NewGccLike("cc", "cc", "ar")

	p := project.NewProject("app", project.Executable)
	option.Extend(p.Config(project.Selector{}), project.Files, "main.c", "util.c", "readme.txt")
	*option.Get(p.Config(project.Selector{}), project.OutputDir) = "out"

	resolved := resolveProject(t, p)
	outputs, err := gcc.Process(p, resolved, "", ".")
	require.NoError(t, err)
	require.Len(t, outputs, 1)

	commands := *option.Get(resolved, project.Commands)
	require.Len(t, commands, 3, "two compiles plus one link, readme.txt skipped")
	assert.Contains(t, commands[0].Command, "cc")
	assert.Contains(t, commands[2].Command, "-o")
}

func TestGccLikeProcessStaticLibPublishesLinkedOutput(t *testing.T) {
	gcc := NewGccLike("cc", "cc", "ar")

	lib := project.NewProject("lib", project.StaticLib)
	option.Extend(lib.Config(project.Selector{}), project.Files, "lib.c")
	*option.Get(lib.Config(project.Selector{}), project.OutputDir) = "out"

	resolved := resolveProject(t, lib)
	outputs, err := gcc.Process(lib, resolved, "", ".")
	require.NoError(t, err)
	require.Len(t, outputs, 1)

	publicSelector := project.NewSelector(project.WithTransitivity(project.Public), project.WithConfig(""))
	got := *option.Get(lib.Config(publicSelector), project.LinkedOutputs)
	assert.Equal(t, outputs, got)
}

func TestGccLikeProcessSkipsUntypedProject(t *testing.T) {
	gcc := NewGccLike("cc", "cc", "ar")
	p := project.NewProject("group")
	resolved := resolveProject(t, p)
	outputs, err := gcc.Process(p, resolved, "", ".")
	require.NoError(t, err)
	assert.Empty(t, outputs)
	assert.Empty(t, *option.Get(resolved, project.Commands))
}

func TestRegistryLookupAndNames(t *testing.T) {
	Register("test-gcc", NewGccLike("cc", "cc", "ar"))
	assert.Contains(t, Names(), "test-gcc")
	assert.NotNil(t, Lookup("test-gcc"))
	assert.Nil(t, Lookup("does-not-exist"))
}
