package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCopyDeclaresInputAndOutput(t *testing.T) {
	c := Copy("src/a.txt", "dst/a.txt")
	assert.Equal(t, []string{"src/a.txt"}, c.Inputs)
	assert.Equal(t, []string{"dst/a.txt"}, c.Outputs)
	assert.Contains(t, c.Command, "cp")
	assert.Contains(t, c.Command, "dst")
}

func TestMkdirDeclaresOutput(t *testing.T) {
	c := Mkdir("build/obj")
	assert.Equal(t, []string{"build/obj"}, c.Outputs)
	assert.Contains(t, c.Command, "mkdir -p")
}
