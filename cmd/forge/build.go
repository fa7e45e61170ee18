package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/maruel/subcommands"

	"go.forgebuild.dev/forge/builder"
	"go.forgebuild.dev/forge/forgeconfig"
	"go.forgebuild.dev/forge/forgelog"
)

const buildUsage = `build the discovered sources directly, in-process.

 $ forge build [-C dir] [-config name] [-out dir] [-j n]
`

func cmdBuild() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "build [args]",
		ShortDesc: "resolve and build sources directly, without an emitter",
		LongDesc:  buildUsage,
		CommandRun: func() subcommands.CommandRun {
			r := &buildRun{}
			r.init()
			return r
		},
	}
}

type buildRun struct {
	subcommands.CommandRunBase
	dir         string
	config      string
	outputDir   string
	parallelism int
}

func (r *buildRun) init() {
	r.Flags.StringVar(&r.dir, "C", ".", "directory to scan for sources")
	r.Flags.StringVar(&r.config, "config", "", "configuration to build (defaults to forge.yaml's, or \"debug\")")
	r.Flags.StringVar(&r.outputDir, "out", "", "output directory (defaults to forge.yaml's, or \"out\")")
	r.Flags.IntVar(&r.parallelism, "j", 0, "max commands to run at once (0 = forge.yaml's, or host core count)")
}

func (r *buildRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	if err := r.Flags.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if err := r.run(context.Background()); err != nil {
		forgelog.Errorf("%v", err)
		return 1
	}
	return 0
}

func (r *buildRun) run(ctx context.Context) error {
	cfg, err := forgeconfig.Load(filepath.Join(r.dir, "forge.yaml"))
	if err != nil {
		return err
	}
	if r.outputDir != "" {
		cfg.OutputDir = r.outputDir
	}
	if r.config == "" {
		r.config = cfg.DefaultConfig
	}
	if r.config == "" {
		r.config = "debug"
	}
	if r.parallelism <= 0 {
		r.parallelism = cfg.Parallelism
	}

	buildEnv, roots, err := buildEnvironment(cfg, r.dir)
	if err != nil {
		return err
	}

	entries, err := resolveCommands(buildEnv, roots, r.config, cfg.OutputDir)
	if err != nil {
		return err
	}

	graph, err := builder.NewGraph(entries)
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	log := forgelog.With("run", runID)
	log.Infof("building %d project(s), %d command(s), config=%s", len(roots), len(graph.Commands), r.config)

	return builder.Execute(ctx, graph, builder.Options{Parallelism: r.parallelism})
}
