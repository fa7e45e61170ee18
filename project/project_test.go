package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.forgebuild.dev/forge/option"
)

func TestResolveSingleProjectLocalOptions(t *testing.T) {
	p := NewProject("app", Executable)
	option.Extend(p.Config(Selector{}), Files, "main.c")

	resolved, err := p.Resolve(p.Type, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"main.c"}, *option.Get(resolved, Files))
}

func TestResolveTransitivePublicIncludePath(t *testing.T) {
	lib := NewProject("lib", StaticLib)
	option.Extend(lib.Config(NewSelector(WithTransitivity(Public))), IncludePaths, "lib/include")
	option.Extend(lib.Config(Selector{}), Files, "lib.c")

	app := NewProject("app", Executable)
	app.Link(lib)
	option.Extend(app.Config(Selector{}), Files, "main.c")

	resolved, err := app.Resolve(app.Type, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/include"}, *option.Get(resolved, IncludePaths))
	assert.ElementsMatch(t, []string{"main.c"}, *option.Get(resolved, Files), "lib's local Files must not leak into app")
}

func TestResolvePublicOnlyExcludedFromOwner(t *testing.T) {
	lib := NewProject("lib", StaticLib)
	option.Extend(lib.Config(NewSelector(WithTransitivity(PublicOnly))), Defines, "LIB_PUBLIC")

	resolved, err := lib.Resolve(lib.Type, "", "")
	require.NoError(t, err)
	assert.Empty(t, *option.Get(resolved, Defines), "PublicOnly options must not apply to the owning project")

	app := NewProject("app", Executable)
	app.Link(lib)
	resolvedApp, err := app.Resolve(app.Type, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"LIB_PUBLIC"}, *option.Get(resolvedApp, Defines))
}

func TestResolveLocalNotTransitive(t *testing.T) {
	lib := NewProject("lib", StaticLib)
	option.Extend(lib.Config(Selector{}), Defines, "LIB_LOCAL")

	app := NewProject("app", Executable)
	app.Link(lib)
	resolved, err := app.Resolve(app.Type, "", "")
	require.NoError(t, err)
	assert.Empty(t, *option.Get(resolved, Defines), "Local options must not propagate across a link")
}

func TestResolveConfigNameSelector(t *testing.T) {
	p := NewProject("app", Executable)
	option.Extend(p.Config(NewSelector(WithConfig("debug"))), Defines, "DEBUG")
	option.Extend(p.Config(NewSelector(WithConfig("release"))), Defines, "NDEBUG")

	debugResolved, err := p.Resolve(p.Type, "debug", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"DEBUG"}, *option.Get(debugResolved, Defines))

	releaseResolved, err := p.Resolve(p.Type, "release", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"NDEBUG"}, *option.Get(releaseResolved, Defines))
}

func TestResolveProjectTypeSelector(t *testing.T) {
	p := NewProject("lib", StaticLib)
	staticType := StaticLib
	option.Extend(p.Config(NewSelector(WithProjectType(staticType))), Features, "static-only")

	resolved, err := p.Resolve(&staticType, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"static-only"}, *option.Get(resolved, Features))

	sharedType := SharedLib
	resolvedShared, err := p.Resolve(&sharedType, "", "")
	require.NoError(t, err)
	assert.Empty(t, *option.Get(resolvedShared, Features))
}

func TestResolveDeduplicatesAcrossDiamond(t *testing.T) {
	common := NewProject("common", StaticLib)
	option.Extend(common.Config(NewSelector(WithTransitivity(Public))), IncludePaths, "common/include")

	a := NewProject("a", StaticLib)
	a.Link(common)
	b := NewProject("b", StaticLib)
	b.Link(common)

	app := NewProject("app", Executable)
	app.Link(a)
	app.Link(b)

	resolved, err := app.Resolve(app.Type, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"common/include"}, *option.Get(resolved, IncludePaths))
}

func TestResolveDetectsCycle(t *testing.T) {
	a := NewProject("a")
	b := NewProject("b")
	a.Link(b)
	b.Link(a)

	_, err := a.Resolve(nil, "", "")
	require.Error(t, err)
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
}

func TestOutputPathDefaultsToProjectName(t *testing.T) {
	p := NewProject("app", Executable)
	resolved := option.NewCollection()
	*option.Get(resolved, OutputDir) = "out"
	*option.Get(resolved, OutputExtension) = ".exe"

	assert.Equal(t, "out/app.exe", p.OutputPath(resolved))
}

func TestOutputPathHonorsExplicitPath(t *testing.T) {
	p := NewProject("app", Executable)
	resolved := option.NewCollection()
	*option.Get(resolved, OutputPath) = "custom/path/app"

	assert.Equal(t, "custom/path/app", p.OutputPath(resolved))
}

func TestSelectorLessIsATotalOrder(t *testing.T) {
	s1 := NewSelector(WithTransitivity(Local))
	s2 := NewSelector(WithTransitivity(Public))
	assert.True(t, s1.Less(s2))
	assert.False(t, s2.Less(s1))
}
