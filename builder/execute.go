package builder

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"go.forgebuild.dev/forge/forgelog"
	"go.forgebuild.dev/forge/process"
)

// ProgressFunc is called once for every command the executor decides to
// run (not for ones it skips as already up to date), after the command
// has finished. index and total let a caller render "[i/total]" style
// progress; err is the command's result.
type ProgressFunc func(index, total int, pc *PendingCommand, err error)

// DefaultProgress renders "[i/total] <description>" lines to the shared
// forgelog writer, each prefixed with a carriage return so it rewrites the
// current line, and ends with a newline once index reaches total. A
// failure is written on its own line. It makes no distinction between a
// terminal and any other stream.
func DefaultProgress(index, total int, pc *PendingCommand, err error) {
	desc := pc.Entry.Description
	if desc == "" {
		desc = pc.Entry.Command
	}
	if err != nil {
		fmt.Fprintf(forgelog.Writer(), "\n[%d/%d] FAILED: %s: %v\n", index, total, desc, err)
		return
	}
	fmt.Fprintf(forgelog.Writer(), "\r[%d/%d] %s", index, total, desc)
	if index == total {
		fmt.Fprintln(forgelog.Writer())
	}
}

// Options configures Execute.
type Options struct {
	// Parallelism bounds how many commands run at once. Zero or negative
	// means the number of logical CPU cores reported by cpuid.
	Parallelism int
	Progress    ProgressFunc
}

func (o Options) parallelism() int64 {
	if o.Parallelism > 0 {
		return int64(o.Parallelism)
	}
	return int64(cpuid.CPU.LogicalCores)
}

// Execute runs every stale command in g with bounded parallelism,
// respecting dependency order: a command never starts before every
// command producing one of its inputs has finished. It returns the first
// error any command produced; commands already in flight when that
// happens are allowed to finish, but no new commands are started.
func Execute(ctx context.Context, g *Graph, opts Options) error {
	progress := opts.Progress
	if progress == nil {
		progress = DefaultProgress
	}

	total := len(g.Commands)
	if total == 0 {
		return nil
	}

	sem := semaphore.NewWeighted(opts.parallelism())
	eg, egCtx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	remaining := make(map[*PendingCommand]int, total)
	for _, pc := range g.Commands {
		remaining[pc] = len(pc.Dependencies)
	}

	var initial []*PendingCommand
	for _, pc := range g.Commands {
		if remaining[pc] == 0 {
			initial = append(initial, pc)
		}
	}
	sort.Slice(initial, func(i, j int) bool { return initial[i].Depth > initial[j].Depth })

	ready := make(chan *PendingCommand, total)
	for _, pc := range initial {
		ready <- pc
	}

	var dispatched int32
	var completedIndex int32

	for atomic.LoadInt32(&dispatched) < int32(total) {
		var pc *PendingCommand
		select {
		case pc = <-ready:
		case <-egCtx.Done():
			return eg.Wait()
		}
		atomic.AddInt32(&dispatched, 1)

		eg.Go(func() error {
			if err := sem.Acquire(egCtx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			// ctx rather than egCtx: a failure elsewhere stops new commands
			// (Acquire above fails) but does not kill this one mid-run.
			ran, err := runOne(ctx, pc)
			index := int(atomic.AddInt32(&completedIndex, 1))
			if ran || err != nil {
				progress(index, total, pc, err)
			}
			if err != nil {
				return fmt.Errorf("builder: %s: %w", describeForError(pc), err)
			}

			mu.Lock()
			for _, dependent := range pc.Dependents {
				remaining[dependent]--
				if remaining[dependent] == 0 {
					ready <- dependent
				}
			}
			mu.Unlock()
			return nil
		})
	}

	return eg.Wait()
}

func describeForError(pc *PendingCommand) string {
	if pc.Entry.Description != "" {
		return pc.Entry.Description
	}
	return pc.Entry.Command
}

func runOne(ctx context.Context, pc *PendingCommand) (ran bool, err error) {
	dirty, err := isDirty(pc)
	if err != nil {
		return false, err
	}
	if !dirty {
		return false, nil
	}

	if _, err := process.Run(ctx, pc.Entry); err != nil {
		return true, err
	}
	pc.ran.Store(true)
	return true, nil
}
