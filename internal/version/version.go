// Package version provides build version information and runtime metadata.
package version

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Name is the program name shown in version strings.
const Name = "engagement-dashboard-tui"

var (
	// These are set via ldflags at build time
	Version = ""
	Commit  = ""
	Date    = ""

	once sync.Once

	execCommand = exec.CommandContext
)

const gitTimeout = 2 * time.Second

// Build describes the running binary.
type Build struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
	Platform  string
}

func ensureInitialized() {
	once.Do(func() {
		if Date == "" {
			Date = time.Now().Format("2006-01-02")
		}
		if Commit == "" {
			Commit = git("unknown", "describe", "--always", "--dirty")
		}
		if Version == "" {
			Version = strings.TrimPrefix(git("dev", "describe", "--tags", "--abbrev=0"), "v")
		}
	})
}

// git runs a git subcommand and returns its trimmed output, or fallback
// when git fails or prints nothing.
func git(fallback string, args ...string) string {
	ctx, cancel := context.WithTimeout(context.Background(), gitTimeout)
	defer cancel()

	cmd := execCommand(ctx, "git", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return fallback
	}
	if v := strings.TrimSpace(out.String()); v != "" {
		return v
	}
	return fallback
}

// Get returns the build metadata, resolving unset values from git once.
func Get() Build {
	ensureInitialized()
	return Build{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Info returns a one-line version string.
func Info() string {
	b := Get()
	return fmt.Sprintf("%s %s (commit: %s, built: %s, %s)", Name, b.Version, b.Commit, b.Date, b.Platform)
}

// Reset clears values resolved at runtime so the next Get resolves them again.
func Reset() {
	once = sync.Once{}
	Version, Commit, Date = "", "", ""
}
