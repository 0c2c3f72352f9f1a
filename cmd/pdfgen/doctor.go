package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	pdfgen "github.com/Ian9Franco/pdf-generator"
	"github.com/Ian9Franco/pdf-generator/internal/assets"
	"github.com/Ian9Franco/pdf-generator/internal/fileutil"
)

// Doctor statuses.
const (
	doctorReady    = "ready"
	doctorWarnings = "warnings"
	doctorErrors   = "errors"
)

// lookPath locates a Chrome binary. Replaced in tests.
var lookPath = launcher.LookPath

// diagnosis is the doctor report.
type diagnosis struct {
	Status   string       `json:"status"`
	Browser  browserCheck `json:"browser"`
	Env      envCheck     `json:"environment"`
	Assets   assetCheck   `json:"assets"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

type browserCheck struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type envCheck struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"containerHint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rodNoSandbox"`
	BrowserBin    string `json:"rodBrowserBin"`
	TempWritable  bool   `json:"tempWritable"`
}

type assetCheck struct {
	Styles []string `json:"styles"`
	Fonts  int      `json:"fonts"`
}

// runDoctorCmd prints the diagnosis and returns ExitGeneral when any check
// failed. Warnings alone exit 0.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	jsonOutput := fs.Bool("json", false, "print the diagnosis as JSON")
	fs.SetOutput(env.Stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	d := diagnose()

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(d)
	} else {
		printDiagnosis(env.Stdout, d)
	}

	if d.Status == doctorErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// diagnose runs every check.
func diagnose() *diagnosis {
	d := &diagnosis{
		Env: envCheck{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkBrowser(d)
	checkEnvironment(d)
	checkTempDir(d)
	checkAssets(d)

	switch {
	case len(d.Errors) > 0:
		d.Status = doctorErrors
	case len(d.Warnings) > 0:
		d.Status = doctorWarnings
	default:
		d.Status = doctorReady
	}
	return d
}

func checkBrowser(d *diagnosis) {
	path := d.Env.BrowserBin
	if path == "" {
		var found bool
		path, found = lookPath()
		if !found {
			d.Errors = append(d.Errors, "Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(path); err != nil {
		d.Errors = append(d.Errors, fmt.Sprintf("Chrome not found at %s", path))
		return
	}

	d.Browser.Found = true
	d.Browser.Path = path
	d.Browser.Sandbox = d.Env.NoSandbox != "1"

	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- path is the configured browser
	if err != nil {
		d.Warnings = append(d.Warnings, fmt.Sprintf("could not read Chrome version: %v", err))
		return
	}
	d.Browser.Version = strings.TrimSpace(string(out))
}

func checkEnvironment(d *diagnosis) {
	d.Env.Container, d.Env.ContainerHint = detectContainer()

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			d.Env.CI = true
			break
		}
	}

	if (d.Env.Container || d.Env.CI) && d.Env.NoSandbox != "1" {
		d.Warnings = append(d.Warnings, "container/CI detected but ROD_NO_SANDBOX is not set; set ROD_NO_SANDBOX=1")
	}
}

// detectContainer returns whether we run in a container and which signal
// said so.
func detectContainer() (bool, string) {
	if os.Getenv("PDFGEN_CONTAINER") == "1" {
		return true, "PDFGEN_CONTAINER=1"
	}
	if fileutil.IsRegularFile("/.dockerenv") {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

func checkTempDir(d *diagnosis) {
	dir := os.TempDir()
	if err := fileutil.ProbeWritable(dir); err != nil {
		d.Errors = append(d.Errors, fmt.Sprintf("temp directory not writable: %s: %v", dir, err))
		return
	}
	d.Env.TempWritable = true
}

func checkAssets(d *diagnosis) {
	d.Assets.Styles = assets.StyleNames()
	d.Assets.Fonts = len(pdfgen.Fonts())
	if len(d.Assets.Styles) == 0 {
		d.Errors = append(d.Errors, "no embedded styles found")
	}
}

// printDiagnosis writes the human-readable report.
func printDiagnosis(w io.Writer, d *diagnosis) {
	fmt.Fprintln(w, "pdfgen doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Browser")
	if d.Browser.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", d.Browser.Path)
		if d.Browser.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", d.Browser.Version)
		}
		if d.Browser.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", d.Env.OS, d.Env.Arch)
	if d.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", d.Env.ContainerHint)
	}
	if d.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	if d.Env.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Assets")
	fmt.Fprintf(w, "  [OK] Styles: %s\n", strings.Join(d.Assets.Styles, ", "))
	fmt.Fprintf(w, "  [OK] Fonts: %d families\n", d.Assets.Fonts)
	fmt.Fprintln(w)

	for _, warn := range d.Warnings {
		fmt.Fprintf(w, "[WARN] %s\n", warn)
	}
	for _, e := range d.Errors {
		fmt.Fprintf(w, "[ERROR] %s\n", e)
	}
	if len(d.Warnings)+len(d.Errors) > 0 {
		fmt.Fprintln(w)
	}

	switch d.Status {
	case doctorReady:
		fmt.Fprintln(w, "Status: ready")
	case doctorWarnings:
		fmt.Fprintln(w, "Status: ready with warnings")
	case doctorErrors:
		fmt.Fprintln(w, "Status: not ready (see errors above)")
	}
}
