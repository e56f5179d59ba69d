package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"applybasics/internal/apply"
	"applybasics/internal/console"
	"applybasics/internal/logging"
	"applybasics/internal/model"
	"applybasics/internal/rewrite"
)

const programName = "apply-basics"

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [files_to_process]\n", programName)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, model.ResolveConfig))
}

// helpRequested reports whether the first argument is exactly one of the
// help flag's spellings. Variants such as "-hh" or "--help=true" are files to
// process like every other argument.
func helpRequested(first string) bool {
	flags := pflag.NewFlagSet(programName, pflag.ContinueOnError)
	flags.BoolP("help", "h", false, "Show this help message")
	help := flags.Lookup("help")
	return first == "--"+help.Name || first == "-"+help.Shorthand
}

func run(args []string, stdout, stderr io.Writer, resolve func() (model.Config, error)) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}
	if helpRequested(args[0]) {
		printUsage(stdout)
		return 0
	}

	logger := logging.New(stderr)
	defer logger.Sync()

	cfg, err := resolve()
	if err != nil {
		logger.Error("Could not resolve configuration", zap.Error(err))
		return 1
	}

	refs, err := rewrite.LoadReferenceSet(cfg)
	if err != nil {
		logger.Error("Could not load reference header", zap.String("path", cfg.ReferencePath), zap.Error(err))
		return 1
	}
	logger.Debug("Loaded reference header", zap.String("path", cfg.ReferencePath), zap.Int("includes", refs.Len()))

	driver := apply.NewDriver(cfg, rewrite.NewRewriter(cfg, refs), console.NewNotifier(stdout), logger)
	if _, err := driver.Run(args); err != nil {
		logger.Error("Rewrite aborted", zap.Error(err))
		return 1
	}
	return 0
}
