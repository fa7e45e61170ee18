package builder

import (
	"os"
	"time"

	"go.forgebuild.dev/forge/depfile"
)

// isDirty reports whether pc needs to run: true if any declared output is
// missing, if the oldest output is older than the newest known input (the
// entry's own Inputs plus whatever a depfile records), or if any upstream
// dependency actually ran earlier in this build.
//
// A dependency having run is checked in addition to comparing mtimes,
// rather than instead of it, because filesystem mtime resolution on some
// platforms is coarse enough for a producer and its immediate consumer to
// land in the same tick.
func isDirty(pc *PendingCommand) (bool, error) {
	for _, dep := range pc.Dependencies {
		if dep.Ran() {
			return true, nil
		}
	}

	if len(pc.Entry.Outputs) == 0 {
		// A command with no declared outputs (a pure side-effecting
		// command) can't be judged stale by comparing files; treat it as
		// always dirty so it always runs.
		return true, nil
	}

	var oldestOutput time.Time
	for i, output := range pc.Entry.Outputs {
		info, err := os.Stat(output)
		if os.IsNotExist(err) {
			return true, nil
		}
		if err != nil {
			return false, err
		}
		if i == 0 || info.ModTime().Before(oldestOutput) {
			oldestOutput = info.ModTime()
		}
	}

	inputs := append([]string{}, pc.Entry.Inputs...)
	if pc.Entry.DepFile != "" {
		depInputs, err := depfile.ParseFile(pc.Entry.DepFile)
		if err != nil {
			return false, err
		}
		if len(depInputs) == 0 {
			// A declared depfile that is missing or records nothing can't
			// be trusted to describe this command's real dependencies.
			return true, nil
		}
		inputs = append(inputs, depInputs...)
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if os.IsNotExist(err) {
			// An input that no longer exists will make the command fail
			// anyway; let it run so that failure surfaces.
			return true, nil
		}
		if err != nil {
			return false, err
		}
		if info.ModTime().After(oldestOutput) {
			return true, nil
		}
	}

	return false, nil
}
