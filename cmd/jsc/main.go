// Command jsc checks a program's syntax-tree dumps: it loads the entry file
// and its imports, resolves every name, type-checks the result and prints
// the diagnostics.
//
//	jsc check [-config jsc.yaml] [-v] [-color auto|always|never] [entry]
//	jsc version
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/funvibe/jsc/internal/analyzer"
	"github.com/funvibe/jsc/internal/config"
	"github.com/funvibe/jsc/internal/diagnostics"
	"github.com/funvibe/jsc/internal/modules"
	"github.com/funvibe/jsc/internal/pipeline"
	"github.com/funvibe/jsc/internal/treeio"
)

// Exit codes.
const (
	exitOK          = 0
	exitDiagnostics = 1
	exitEnv         = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitEnv
	}
	switch args[0] {
	case "check":
		return runCheck(ctx, args[1:], stderr)
	case "version":
		fmt.Fprintf(stdout, "jsc %s\n", config.Version)
		return exitOK
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return exitOK
	}
	fmt.Fprintf(stderr, "jsc: unknown command %q\n", args[0])
	usage(stderr)
	return exitEnv
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  jsc check [-config path] [-v] [-color auto|always|never] [entry]")
	fmt.Fprintln(w, "  jsc version")
}

func runCheck(ctx context.Context, args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("check", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "project file (default: "+config.ProjectFileName+" searched upward from the entry)")
	verbose := flags.Bool("v", false, "log pipeline stages")
	color := flags.String("color", "", "colour diagnostics: auto, always or never")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitEnv
	}
	if flags.NArg() > 1 {
		fmt.Fprintln(stderr, "jsc: check takes at most one entry file")
		return exitEnv
	}
	entry := flags.Arg(0)

	project, err := loadProject(*configPath, entry)
	if err != nil {
		fmt.Fprintf(stderr, "jsc: %v\n", err)
		return exitEnv
	}
	if *verbose {
		project.Verbose = true
	}
	switch *color {
	case "":
	case config.ColorAuto, config.ColorAlways, config.ColorNever:
		project.Color = *color
	default:
		fmt.Fprintf(stderr, "jsc: -color must be auto, always or never (got %q)\n", *color)
		return exitEnv
	}

	if entry == "" {
		entry = project.EntryPath()
	}
	if entry == "" {
		fmt.Fprintf(stderr, "jsc: no entry file given and none configured in %s\n", config.ProjectFileName)
		return exitEnv
	}
	entry, err = filepath.Abs(entry)
	if err != nil {
		fmt.Fprintf(stderr, "jsc: %v\n", err)
		return exitEnv
	}

	var logger *log.Logger
	if project.Verbose {
		logger = log.New(stderr, "jsc: ", 0)
	}
	pctx := pipeline.NewPipelineContext(ctx, entry, project, logger)
	pctx = pipeline.New(
		&modules.LoaderProcessor{Parser: treeio.Parser{}},
		&analyzer.ResolverProcessor{},
		&analyzer.CheckerProcessor{},
	).Run(pctx)
	if pctx.Err != nil {
		fmt.Fprintf(stderr, "jsc: %v\n", pctx.Err)
		return exitEnv
	}

	emitter := diagnostics.NewEmitter(stderr, diagnostics.ColorMode(project.Color), project.Context())
	emitter.SetBaseDir(filepath.Dir(pctx.EntryPath))
	emitter.SetLimit(project.MaxDiagnostics)
	for path, src := range pctx.Sources() {
		emitter.AddSource(path, src)
	}
	emitter.EmitAll(pctx.Diagnostics)

	if pctx.Diagnostics.HasErrors() {
		return exitDiagnostics
	}
	return exitOK
}

// loadProject reads the -config file, or the nearest project file above
// the entry (or the working directory), or falls back to defaults.
func loadProject(explicit, entry string) (*config.Project, error) {
	if explicit != "" {
		return config.LoadProject(explicit)
	}
	dir := "."
	if entry != "" {
		dir = filepath.Dir(entry)
	}
	path, err := config.FindProject(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return config.DefaultProject(), nil
	}
	return config.LoadProject(path)
}
