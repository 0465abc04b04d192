package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-json"
	"github.com/spf13/pflag"

	"github.com/BrianJOC/ndx-builder/codegen"
	"github.com/BrianJOC/ndx-builder/schema"
)

const (
	formatScript = "script"
	formatYAML   = "yaml"
	formatJSON   = "json"
)

type outputOptions struct {
	format string
	output string
	dir    string
}

func (o *outputOptions) bind(flags *pflag.FlagSet) {
	flags.StringVar(&o.format, "format", formatScript, "output format: script, yaml or json")
	flags.StringVarP(&o.output, "output", "o", "", "write the script or json to this file instead of stdout")
	flags.StringVar(&o.dir, "dir", ".", "directory for the yaml spec files")
}

func (o *outputOptions) write(stdout io.Writer, ns schema.Namespace) error {
	switch o.format {
	case formatScript:
		script, err := codegen.Script(ns)
		if err != nil {
			return err
		}
		return o.emit(stdout, []byte(script))
	case formatJSON:
		raw, err := json.MarshalIndent(ns, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal namespace: %w", err)
		}
		return o.emit(stdout, append(raw, '\n'))
	case formatYAML:
		files, err := codegen.Files(ns)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(files))
		for name := range files {
			names = append(names, name)
		}
		sort.Strings(names)
		if err := os.MkdirAll(o.dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", o.dir, err)
		}
		for _, name := range names {
			path := filepath.Join(o.dir, name)
			if err := os.WriteFile(path, files[name], 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintln(stdout, path)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", o.format)
	}
}

func (o *outputOptions) emit(stdout io.Writer, data []byte) error {
	if o.output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(o.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", o.output, err)
	}
	return nil
}
