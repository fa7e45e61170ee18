// Package forgeconfig loads ambient defaults from an optional forge.yaml
// file in the invocation directory. It is deliberately separate from the
// CLI argument parser (an external collaborator by design): this package
// only supplies defaults a CLI can overlay flags on top of.
package forgeconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the defaults forge.yaml can set.
type Config struct {
	// DefaultConfig names the build configuration used when none is
	// given on the command line (e.g. "debug").
	DefaultConfig string `yaml:"defaultConfig"`
	// DefaultEmitter names the emitter used when none is given.
	DefaultEmitter string `yaml:"defaultEmitter"`
	// OutputDir is the default output directory. It is used as given, so a
	// relative path is relative to the directory forge runs in, not to the
	// file's own directory.
	OutputDir string `yaml:"outputDir"`
	// Parallelism bounds default concurrent command execution; zero means
	// "use the host's logical core count".
	Parallelism int `yaml:"parallelism"`
	// Configs lists every build configuration name this project defines;
	// the CLI declares each one on its Environment ("debug" and "release"
	// when the list is empty). The -config flag is not checked against it.
	Configs []string `yaml:"configs"`
}

// Default returns the configuration a project with no
// forge.yaml gets: no fixed default config name, the ninja emitter, an
// "out" output directory, and host-core-count parallelism.
func Default() Config {
	return Config{
		DefaultEmitter: "ninja",
		OutputDir:      "out",
	}
}

// Load reads and parses path. A missing file is not an error: it returns
// Default() unchanged, since forge.yaml is an optional ambient
// convenience, not a required project manifest.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("forgeconfig: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("forgeconfig: parsing %s: %w", path, err)
	}

	return cfg, nil
}
