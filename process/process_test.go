package process

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.forgebuild.dev/forge/project"
)

func TestRunSuccessCapturesOutput(t *testing.T) {
	result, err := Run(context.Background(), project.CommandEntry{
		Command: "echo hello",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Output, "hello")
}

func TestRunNonzeroExitReturnsExitError(t *testing.T) {
	_, err := Run(context.Background(), project.CommandEntry{
		Command: "exit 3",
	})
	require.Error(t, err)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode)
}

func TestRunCreatesOutputParentDirectories(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "nested", "deep", "out.txt")

	_, err := Run(context.Background(), project.CommandEntry{
		Command: "echo hi > " + output,
		Outputs: []string{output},
	})
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Dir(output))
	assert.NoError(t, statErr)
}

func TestRunUsesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	result, err := Run(context.Background(), project.CommandEntry{
		Command:          "pwd",
		WorkingDirectory: dir,
	})
	require.NoError(t, err)
	resolvedDir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Contains(t, result.Output, resolvedDir)
}
