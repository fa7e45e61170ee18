package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/maruel/subcommands"

	"go.forgebuild.dev/forge/emit"
	"go.forgebuild.dev/forge/forgeconfig"
	"go.forgebuild.dev/forge/forgelog"

	_ "go.forgebuild.dev/forge/ninjaemit"
)

const emitUsage = `write build files for the discovered sources via a registered emitter.

 $ forge emit [-C dir] [-config name] [-out dir] [-emitter name]
`

func cmdEmit() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "emit [args]",
		ShortDesc: "write build files via a registered emitter (default: ninja)",
		LongDesc:  emitUsage,
		CommandRun: func() subcommands.CommandRun {
			r := &emitRun{}
			r.init()
			return r
		},
	}
}

type emitRun struct {
	subcommands.CommandRunBase
	dir       string
	config    string
	outputDir string
	emitter   string
}

func (r *emitRun) init() {
	r.Flags.StringVar(&r.dir, "C", ".", "directory to scan for sources")
	r.Flags.StringVar(&r.config, "config", "", "configuration to emit (defaults to forge.yaml's, or \"debug\")")
	r.Flags.StringVar(&r.outputDir, "out", "", "output directory (defaults to forge.yaml's, or \"out\")")
	r.Flags.StringVar(&r.emitter, "emitter", "", "emitter to use (defaults to forge.yaml's, or \"ninja\")")
}

func (r *emitRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	if err := r.Flags.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if err := r.run(); err != nil {
		forgelog.Errorf("%v", err)
		return 1
	}
	return 0
}

func (r *emitRun) run() error {
	cfg, err := forgeconfig.Load(filepath.Join(r.dir, "forge.yaml"))
	if err != nil {
		return err
	}
	if r.outputDir != "" {
		cfg.OutputDir = r.outputDir
	}
	if r.emitter != "" {
		cfg.DefaultEmitter = r.emitter
	}
	if r.config == "" {
		r.config = cfg.DefaultConfig
	}
	if r.config == "" {
		r.config = "debug"
	}

	e := emit.Lookup(cfg.DefaultEmitter)
	if e == nil {
		return fmt.Errorf("forge: unknown emitter %q (have: %v)", cfg.DefaultEmitter, emit.Names())
	}

	buildEnv, roots, err := buildEnvironment(cfg, r.dir)
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	log := forgelog.With("run", runID)
	log.Infof("emitting via %q to %s, config=%s", e.Name(), cfg.OutputDir, r.config)

	return e.Emit(buildEnv, roots, cfg.OutputDir, r.config)
}
