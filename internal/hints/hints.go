// Package hints appends actionable suggestions to CLI error messages.
// Every hint renders as "\n  hint: <text>" so it lines up under the error.
package hints

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ian9Franco/pdf-generator/internal/config"
	"github.com/Ian9Franco/pdf-generator/internal/fileutil"
)

const prefix = "\n  hint: "

// IsInContainer reports whether the process runs inside Docker. Replaced in tests.
var IsInContainer = func() bool {
	return fileutil.IsRegularFile("/.dockerenv")
}

var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

func inCI() bool {
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect suggests the rod variables that usually fix a failed
// Chrome launch. Suggestions already applied are left out.
func ForBrowserConnect() string {
	var parts []string
	if os.Getenv("ROD_NO_SANDBOX") != "1" && (inCI() || IsInContainer()) {
		parts = append(parts, "set ROD_NO_SANDBOX=1 in CI or containers")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		parts = append(parts, "set ROD_BROWSER_BIN to a Chrome binary or run 'pdfgen doctor'")
	}
	return join(parts...)
}

// ForTimeout suggests a longer --timeout.
func ForTimeout() string {
	return join("long documents may need a larger --timeout, e.g. -t 2m")
}

// ForConfigNotFound suggests --config, or creating the per-user file among
// the searched paths.
func ForConfigNotFound(searched []string) string {
	hint := "use --config path/to/config.yaml"
	for _, p := range searched {
		if filepath.Base(filepath.Dir(p)) == config.AppDirName {
			hint += " or create " + p
			break
		}
	}
	return join(hint)
}

func ForOutputDirectory() string {
	return join("check that the parent directory exists and is writable")
}

// ForStyleNotFound lists the embedded styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return join("use --style with one of " + strings.Join(available, ", ") + ", or a .css path")
}

// ForUnknownFont lists the selectable fonts.
func ForUnknownFont(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return join("run 'pdfgen fonts' or pick one of: " + strings.Join(available, ", "))
}

// ForProfileNotFound points at --save-profile, which creates the file.
func ForProfileNotFound() string {
	return join("run once with --save-profile to create it")
}

// ForFloorReached says how many pages the content still needs at the
// minimum body size.
func ForFloorReached(pages int) string {
	return join(fmt.Sprintf("content still needs %d pages at the minimum size; shorten it or use --page-size legal", pages))
}

// join renders non-empty parts as one hint line.
func join(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return prefix + strings.Join(kept, "; ")
}
