package depfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   []byte
		want []string
	}{
		{
			name: "simple",
			in:   []byte("foo.o:\tbar baz qux"),
			want: []string{"bar", "baz", "qux"},
		},
		{
			name: "space in name",
			in:   []byte(`foo\ bar.o: baz\ qux`),
			want: []string{"baz qux"},
		},
		{
			name: "newline continuation and mixed whitespace",
			in:   []byte("foo.o :\tbar\\\n\tbaz\\\r\n  qux"),
			want: []string{"bar", "baz", "qux"},
		},
		{
			name: "backslashes preserved when not escaping whitespace",
			in:   []byte("foo\\bar.o: baz\\qux\\\n  quux\\corge"),
			want: []string{`baz\qux`, `quux\corge`},
		},
		{
			name: "no colon means no inputs",
			in:   []byte("not a depfile at all"),
			want: nil,
		},
		{
			name: "empty file means no inputs",
			in:   []byte(""),
			want: nil,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.in)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFileMissingIsNotAnError(t *testing.T) {
	inputs, err := ParseFile("/nonexistent/path/does.not.exist.d")
	assert.NoError(t, err)
	assert.Nil(t, inputs)
}
