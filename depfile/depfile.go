// Package depfile parses Make-style dependency files: the "-MMD -MF"
// output GCC/clang-like compilers emit listing the headers a translation
// unit actually included, used to decide whether a previously-built
// output needs to be rebuilt.
package depfile

import (
	"bytes"
	"os"
	"strings"
)

// Parse extracts the input list from a Make-style depfile's contents:
//
//	<output>: <input> <input> ...
//
// Inputs are whitespace separated; a backslash immediately before a
// newline continues the list on the next line; a backslash before a
// literal space escapes that space rather than separating tokens.
// Everything up to and including the first ':' is discarded. Parse never
// returns an error: a depfile with no ':' (or an empty one) simply has no
// inputs, which callers should treat as a dirty/unknown dependency set,
// not as a parse failure.
func Parse(b []byte) []string {
	i := bytes.IndexByte(b, ':')
	if i < 0 {
		return nil
	}

	var inputs []string
	for s := b[i+1:]; len(s) > 0; {
		var token string
		token, s = nextToken(s)
		if token != "" {
			inputs = append(inputs, token)
		}
	}
	return inputs
}

// ParseFile reads path and parses it as a depfile. A missing file is not
// an error: it returns a nil input list, the same as an empty file, since
// a toolchain that hasn't run yet simply has no depfile on disk.
func ParseFile(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return Parse(b), nil
}

func nextToken(s []byte) (string, []byte) {
	var sb strings.Builder

skipSpaces:
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == '\n' {
			i++
			continue
		}
		if s[i] == '\\' && i+2 < len(s) && s[i+1] == '\r' && s[i+2] == '\n' {
			i += 2
			continue
		}
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			s = s[i:]
			break skipSpaces
		}
	}

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case ' ':
				sb.WriteByte(s[i])
			case '\r', '\n':
				return sb.String(), s[i+1:]
			default:
				sb.WriteByte('\\')
				sb.WriteByte(s[i])
			}
			continue
		}
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			return sb.String(), s[i+1:]
		}
		sb.WriteByte(s[i])
	}
	return sb.String(), nil
}
