// Package sourcescan recursively discovers source files under a
// directory, the way a build description populates its Files option from
// a directory tree instead of listing every file by hand. It supplements
// the resolution/build core with a convenience the original this project
// is modeled on exposed as a free function.
package sourcescan

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"
	"github.com/zabawaba99/go-gitignore"

	"go.forgebuild.dev/forge/option"
	"go.forgebuild.dev/forge/project"
)

// Recognized source file extensions. Files outside this set are never added
// to Files; every visited directory is still reported as a generator
// dependency (so adding a new file still triggers a regenerate).
var sourceExtensions = map[string]bool{
	".c":   true,
	".cc":  true,
	".cpp": true,
	".mm":  true,
	".h":   true,
	".hpp": true,
}

// Options configures List.
type Options struct {
	// Recurse into subdirectories. When false, only dir's direct children
	// are scanned.
	Recurse bool
	// IgnorePatterns are gitignore-style patterns matched against each
	// entry's path relative to dir; a match excludes that file or, for a
	// directory, that entire subtree.
	IgnorePatterns []string
}

// List walks dir and returns an option.Collection with Files populated
// with every recognized source file found, and GeneratorDependencies
// populated with dir and every subdirectory visited, so a build that
// regenerates itself when GeneratorDependencies change picks up added or
// removed files without the build description naming them individually.
func List(dir string, opts Options) (*option.Collection, error) {
	result := option.NewCollection()

	var files []string
	var dirs []string

	err := godirwalk.Walk(dir, &godirwalk.Options{
		Unsorted: true,
		Callback: func(path string, entry *godirwalk.Dirent) error {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			if rel == "." {
				dirs = append(dirs, path)
				return nil
			}

			for _, pattern := range opts.IgnorePatterns {
				if gitignore.Match(pattern, rel) {
					if entry.IsDir() {
						return filepath.SkipDir
					}
					return nil
				}
			}

			if entry.IsDir() {
				dirs = append(dirs, path)
				if !opts.Recurse && path != dir {
					return filepath.SkipDir
				}
				return nil
			}

			if sourceExtensions[strings.ToLower(filepath.Ext(path))] {
				files = append(files, path)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	sort.Strings(dirs)

	option.Extend(result, project.Files, files...)
	option.Extend(result, project.GeneratorDependencies, dirs...)

	return result, nil
}
