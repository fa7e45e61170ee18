// Command forge drives the resolution, toolchain and builder packages
// from the command line: "forge build" executes directly in-process,
// "forge emit" writes build files via a registered emitter. A real build
// description would construct its own Environment instead of the small
// source-directory scan buildEnvironment performs here; that front end is
// an external collaborator this module leaves out of scope.
package main

import (
	"os"
	"runtime"
	"runtime/debug"

	"github.com/maruel/subcommands"

	"go.forgebuild.dev/forge/forgelog"
)

var application = &subcommands.DefaultApplication{
	Name:  "forge",
	Title: "a programmatic build-definition framework",
	Commands: []*subcommands.Command{
		cmdBuild(),
		cmdEmit(),
		subcommands.CmdHelp,
	},
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			forgelog.Fatalf("panic: %v\n%s", r, buf)
		}
	}()

	if info, ok := debug.ReadBuildInfo(); ok {
		forgelog.Debugf("forge %s", info.Main.Version)
	}

	os.Exit(subcommands.Run(application, os.Args[1:]))
}
