package forgelog

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestInfofWritesToConfiguredOutput(t *testing.T) {
	previous := Writer()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(log.InfoLevel)
	defer SetOutput(previous)

	Infof("hello %s", "world")
	assert.Contains(t, buf.String(), "hello world")
}

func TestWriterReturnsConfiguredOutput(t *testing.T) {
	previous := Writer()
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(previous)

	assert.Same(t, &buf, Writer())
}
