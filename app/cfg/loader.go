package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
	"github.com/lysyi3m/feedtree/app/feed"
)

// Version is set at build time via -ldflags
var Version = "dev"

const defaultIndent = "  "

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Input configuration
	Input  string `short:"i" long:"input" env:"FEEDTREE_INPUT" description:"Feed document file, or a directory of documents for a batch build" required:"true"`
	Format string `short:"f" long:"format" env:"FEEDTREE_FORMAT" default:"rss" description:"Output format for a single document (rss or atom)"`

	// Output configuration
	Output  string `short:"o" long:"output" env:"FEEDTREE_OUTPUT" description:"Output file for a single document (- for stdout), output directory for a batch build"`
	Indent  string `long:"indent" env:"FEEDTREE_INDENT" description:"Indentation of readable output (default two spaces)"`
	Compact bool   `long:"compact" env:"FEEDTREE_COMPACT" description:"Write compact XML without indentation"`

	// Application configuration
	WorkerCount int  `long:"workers" env:"FEEDTREE_WORKERS" default:"4" description:"Number of feeds built in parallel in batch mode"`
	Debug       bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
	ShowVersion bool `long:"version" description:"Print the version and exit"`
}

// Load parses args and the environment. It returns nil without an error when
// help was requested.
func Load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)
	parser.Name = "feedtree"

	if hasVersionFlag(args) {
		return &Cfg{ShowVersion: true, Version: GetVersion()}, nil
	}

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if _, err := feed.ParseFormat(raw.Format); err != nil {
		return nil, fmt.Errorf("invalid format: %w", err)
	}
	if raw.WorkerCount < 1 {
		return nil, fmt.Errorf("worker count must be positive, got %d", raw.WorkerCount)
	}

	indent := cmp.Or(raw.Indent, defaultIndent)
	if raw.Compact {
		indent = ""
	}

	cfg := &Cfg{
		Input:       raw.Input,
		Format:      raw.Format,
		Output:      raw.Output,
		Indent:      indent,
		WorkerCount: raw.WorkerCount,
		Debug:       raw.Debug,
		Version:     GetVersion(),
	}

	return cfg, nil
}

// --version skips the required input check.
func hasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "--version" {
			return true
		}
	}
	return false
}
