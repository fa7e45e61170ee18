// Package postprocess provides PostProcessor hooks demonstrating the
// hook contract end-to-end: Bundle appends commands to an already
// resolved project's Commands option rather than modifying the project
// itself, and never appends more PostProcessors (callers that do must
// still be safe for it, but Bundle itself is a simple, terminal hook).
package postprocess

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.forgebuild.dev/forge/commands"
	"go.forgebuild.dev/forge/option"
	"go.forgebuild.dev/forge/project"
)

// Bundle returns a PostProcessor that packages a built executable or
// shared library into a macOS-style bundle directory: <name><ext>/Contents/MacOS/<binary>
// plus a minimal generated Info.plist, wired up as three commands appended
// to the project's resolved Commands: one that writes the Info.plist and
// two that copy the binary and the Info.plist into the bundle.
func Bundle(bundleExtension string) project.PostProcessor {
	if bundleExtension == "" {
		bundleExtension = ".bundle"
	}

	return func(p *project.Project, resolved *option.Collection) {
		projectOutput := p.OutputPath(resolved)
		bundleOutput := replaceExt(projectOutput, bundleExtension)
		bundleBinary := replaceExt(filepath.Base(projectOutput), "")

		dataDir := *option.Get(resolved, project.DataDir)
		plistPath := filepath.Join(dataDir, p.Name, "Info.plist")

		option.Extend(resolved, project.Commands, writePlistCommand(plistPath, p, resolved))
		option.Extend(resolved, project.Commands,
			commands.Copy(projectOutput, filepath.Join(bundleOutput, "Contents", "MacOS", bundleBinary)),
			commands.Copy(plistPath, filepath.Join(bundleOutput, "Contents", "Info.plist")),
		)
	}
}

func writePlistCommand(plistPath string, p *project.Project, resolved *option.Collection) project.CommandEntry {
	plist := generatePlist(p, resolved)
	escaped := strings.ReplaceAll(plist, "'", "'\\''")
	return project.CommandEntry{
		Command:     fmt.Sprintf("mkdir -p %q && printf '%%s' '%s' > %q", filepath.Dir(plistPath), escaped, plistPath),
		Outputs:     []string{plistPath},
		Description: fmt.Sprintf("Generating %s", plistPath),
	}
}

func generatePlist(p *project.Project, resolved *option.Collection) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<!DOCTYPE plist PUBLIC \"-//Apple//DTD PLIST 1.0//EN\" \"http://www.apple.com/DTDs/PropertyList-1.0.dtd\">\n")
	b.WriteString("<plist version=\"1.0\">\n<dict>\n")
	fmt.Fprintf(&b, "  <key>CFBundleExecutable</key>\n  <string>%s</string>\n", replaceExt(filepath.Base(p.OutputPath(resolved)), ""))
	fmt.Fprintf(&b, "  <key>CFBundleName</key>\n  <string>%s</string>\n", p.Name)
	b.WriteString("</dict>\n</plist>\n")
	return b.String()
}

func replaceExt(path, newExt string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + newExt
}
