// Package config loads the CLI's process-wide options from flags and an
// optional YAML file, the file supplying defaults that flags override.
package config

import (
	"os"

	"github.com/juju/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"
)

// Options controls sqlcheck's CLI behavior.
type Options struct {
	// JSON renders diagnostics as JSON instead of human-readable text.
	JSON bool `yaml:"json"`
	// Verbose enables debug-level logging.
	Verbose bool `yaml:"verbose"`
	// ConfigFile points at an optional YAML file of defaults.
	ConfigFile string `yaml:"-"`
	// File, if set, is a batch file of semicolon-terminated statements to
	// validate instead of starting the interactive REPL.
	File string `yaml:"-"`
	// MaxDepth overrides expr.MaxDepth, the expression/subquery nesting
	// limit. Zero means leave the package default alone.
	MaxDepth int `yaml:"max_depth"`
}

// Parse builds Options from args (normally os.Args[1:]), applying any
// --config YAML file as defaults before flags override them.
func Parse(args []string) (*Options, error) {
	fs := pflag.NewFlagSet("sqlcheck", pflag.ContinueOnError)

	var opts Options
	fs.BoolVar(&opts.JSON, "json", false, "render diagnostics as JSON")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	fs.StringVarP(&opts.ConfigFile, "config", "c", "", "path to a YAML defaults file")
	fs.StringVarP(&opts.File, "file", "f", "", "batch-validate statements from this file")
	fs.IntVar(&opts.MaxDepth, "max-depth", 0, "override the expression/subquery nesting depth limit (0 keeps the default)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.ConfigFile != "" {
		if err := applyConfigFile(&opts, opts.ConfigFile); err != nil {
			return nil, err
		}
		// Re-parse so explicit flags still win over file defaults.
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
	}

	return &opts, nil
}

func applyConfigFile(opts *Options, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Annotatef(err, "reading config file %q", path)
	}
	if err := yaml.Unmarshal(data, opts); err != nil {
		return errors.Annotatef(err, "parsing config file %q", path)
	}
	return nil
}
