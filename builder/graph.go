// Package builder implements the direct in-process executor: it flattens
// resolved projects' commands into a dependency DAG keyed by
// output-produces-input edges, assigns each command a depth for
// scheduling priority, determines which commands are stale against what's
// already on disk, and runs the stale ones with bounded parallelism.
package builder

import (
	"fmt"
	"sync/atomic"

	"go.forgebuild.dev/forge/project"
)

// PendingCommand wraps one project.CommandEntry with the graph edges and
// scheduling state the builder computes around it.
type PendingCommand struct {
	Entry project.CommandEntry

	// Dependencies are commands that produce one of Entry's inputs and so
	// must finish before this command can run. Dependents are the
	// reverse: commands whose inputs this one produces.
	Dependencies []*PendingCommand
	Dependents   []*PendingCommand

	// Depth is 1 + the maximum depth of any dependent; commands nothing
	// depends on are 0, so every producer is deeper than its consumers.
	// Used only to order the commands that are ready at the start
	// (deepest first, i.e. producers with the longest chains of consumers
	// behind them are dispatched first), never to gate readiness —
	// readiness is tracked purely via Dependencies completing.
	Depth int

	ran atomic.Bool
}

// Ran reports whether this command actually executed during the current
// Execute call, as opposed to being skipped because its outputs were
// already up to date.
func (pc *PendingCommand) Ran() bool {
	return pc.ran.Load()
}

// CycleError reports that a command's outputs and inputs form a
// dependency cycle: some command directly or indirectly depends on its
// own output.
type CycleError struct {
	Outputs []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("builder: dependency cycle involving output(s) %v", e.Outputs)
}

// DuplicateOutputError reports that two commands both declare the same
// output path. The builder treats this as fatal: it can't tell which
// command is authoritative for that file.
type DuplicateOutputError struct {
	Output string
	First  string
	Second string
}

func (e *DuplicateOutputError) Error() string {
	return fmt.Sprintf("builder: output %q produced by both %q and %q", e.Output, e.First, e.Second)
}

// Graph is the flattened, edge-resolved set of commands ready to be
// scheduled by Execute.
type Graph struct {
	Commands    []*PendingCommand
	outputIndex map[string]*PendingCommand
}

// NewGraph flattens entries into a Graph: it indexes every declared
// output, wires an edge from each input's producer (if any) to the
// command reading it, and assigns scheduling depths. It fails on a
// duplicate output or a dependency cycle.
func NewGraph(entries []project.CommandEntry) (*Graph, error) {
	g := &Graph{
		outputIndex: make(map[string]*PendingCommand, len(entries)),
	}

	for _, entry := range entries {
		pc := &PendingCommand{Entry: entry}
		g.Commands = append(g.Commands, pc)
		for _, output := range entry.Outputs {
			if existing, ok := g.outputIndex[output]; ok {
				return nil, &DuplicateOutputError{
					Output: output,
					First:  existing.Entry.Description,
					Second: entry.Description,
				}
			}
			g.outputIndex[output] = pc
		}
	}

	for _, pc := range g.Commands {
		for _, input := range pc.Entry.Inputs {
			producer, ok := g.outputIndex[input]
			if !ok || producer == pc {
				continue
			}
			producer.Dependents = append(producer.Dependents, pc)
			pc.Dependencies = append(pc.Dependencies, producer)
		}
	}

	if err := assignDepths(g.Commands); err != nil {
		return nil, err
	}

	return g, nil
}

type dfsColor int

const (
	white dfsColor = iota
	gray
	black
)

type dfsFrame struct {
	node *PendingCommand
	idx  int
}

// assignDepths computes Depth for every command via an iterative
// post-order depth-first walk over the Dependents edges (so it never
// overflows the call stack on a deep graph), detecting cycles with a
// standard three-color scheme.
func assignDepths(commands []*PendingCommand) error {
	colors := make(map[*PendingCommand]dfsColor, len(commands))

	for _, root := range commands {
		if colors[root] == black {
			continue
		}

		stack := []dfsFrame{{node: root}}
		colors[root] = gray

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if top.idx < len(top.node.Dependents) {
				dep := top.node.Dependents[top.idx]
				top.idx++
				switch colors[dep] {
				case gray:
					return &CycleError{Outputs: top.node.Entry.Outputs}
				case black:
					continue
				default:
					colors[dep] = gray
					stack = append(stack, dfsFrame{node: dep})
				}
				continue
			}

			depth := 0
			for _, dep := range top.node.Dependents {
				if dep.Depth+1 > depth {
					depth = dep.Depth + 1
				}
			}
			top.node.Depth = depth
			colors[top.node] = black
			stack = stack[:len(stack)-1]
		}
	}

	return nil
}
