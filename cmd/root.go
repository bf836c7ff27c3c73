// Package cmd implements the CLI command structure for orgagenda.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/nibzard/orgagenda/internal/config"
)

// Version is set via ldflags at build time.
var Version = "dev"

// ErrUsage marks errors caused by a malformed command line.
var ErrUsage = errors.New("usage")

// app carries the process streams and filesystem so commands can run
// against buffers and in-memory files.
type app struct {
	stdout io.Writer
	stderr io.Writer
	fs     afero.Fs
	now    func() time.Time
}

func newApp(stdout, stderr io.Writer, fsys afero.Fs) *app {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &app{stdout: stdout, stderr: stderr, fs: fsys, now: time.Now}
}

// Run executes the orgagenda CLI.
func Run(ctx context.Context, args []string) error {
	return newApp(os.Stdout, os.Stderr, nil).run(ctx, args)
}

func (a *app) run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("orgagenda", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		printUsage(fs, a.stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.NewLoader(a.fs).Load(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, a.stdout)
		return nil
	}
	if *showVersion {
		return a.versionCommand()
	}

	// The first positional argument selects the command unless it is a file.
	subcommand := "list"
	remaining := fs.Args()
	if len(remaining) > 0 && isCommand(remaining[0]) {
		subcommand = remaining[0]
		remaining = remaining[1:]
	}

	switch subcommand {
	case "list":
		return a.reportCommand(ctx, cws, remaining, false)
	case "agenda":
		return a.reportCommand(ctx, cws, remaining, true)
	case "files":
		return a.filesCommand(ctx, cws, remaining)
	case "doctor":
		return a.doctorCommand(ctx, cws, remaining)
	case "tui":
		return a.tuiCommand(ctx, cws, remaining)
	case "config":
		return a.configCommand(cws, remaining)
	case "version":
		return a.versionCommand()
	case "help":
		printUsage(fs, a.stdout)
		return nil
	}
	return fmt.Errorf("%w: unknown command %q", ErrUsage, subcommand)
}

var commands = []string{"list", "agenda", "files", "doctor", "tui", "config", "version", "help"}

func isCommand(name string) bool {
	for _, c := range commands {
		if c == name {
			return true
		}
	}
	return false
}

func (a *app) versionCommand() error {
	fmt.Fprintf(a.stdout, "orgagenda %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "orgagenda - TODO lists and agendas from org outline files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  orgagenda [options] [command] [files...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list [files]     List active tasks by due date (default command)")
	fmt.Fprintln(w, "  agenda [files]   Show the day-by-day agenda")
	fmt.Fprintln(w, "  files [files]    Show resolved outline files")
	fmt.Fprintln(w, "  doctor [files]   Check config, rc file, keywords and outline files")
	fmt.Fprintln(w, "  tui [files]      Browse the agenda interactively")
	fmt.Fprintln(w, "  config example   Print an example config file")
	fmt.Fprintln(w, "  config show      Print the effective config and where each value came from")
	fmt.Fprintln(w, "  config schema    Print the config file JSON schema")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Files default to the -f flag, the files config key, then g:org_agenda_files")
	fmt.Fprintln(w, "in the rc file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// joinArgs renders leftover arguments for error messages.
func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
