package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BrianJOC/ndx-builder/codegen"
	"github.com/BrianJOC/ndx-builder/forms"
	"github.com/BrianJOC/ndx-builder/forms/memhost"
	"github.com/BrianJOC/ndx-builder/pkg/replay"
	"github.com/BrianJOC/ndx-builder/pkg/wizardapp"
	"github.com/BrianJOC/ndx-builder/schema"
	"github.com/BrianJOC/ndx-builder/wizards"
)

type options struct {
	logFile string
	debug   bool
	from    string
	out     outputOptions
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "ndx-builder",
		Short:         "Build NWB extension schemas interactively",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd, opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "write structured logs to this file")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log every step transition")
	root.PersistentFlags().StringVar(&opts.from, "from", "", "start from the namespace embedded in a generated script")
	opts.out.bind(root.PersistentFlags())

	run := &cobra.Command{
		Use:   "run",
		Short: "Run the wizard in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd, opts)
		},
	}

	replayCmd := &cobra.Command{
		Use:   "replay <answers.yaml>",
		Short: "Run the wizard headlessly from an answers file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, opts, args[0])
		},
	}

	inspect := &cobra.Command{
		Use:   "inspect <script.py>",
		Short: "Print the namespace embedded in a generated script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := loadScript(args[0])
			if err != nil {
				return err
			}
			return opts.out.write(cmd.OutOrStdout(), ns)
		},
	}

	root.AddCommand(run, replayCmd, inspect)
	return root
}

func runInteractive(cmd *cobra.Command, opts *options) error {
	logger, err := newLogger(opts.logFile, opts.debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	seed, err := seedNamespace(opts.from)
	if err != nil {
		return err
	}

	app, err := wizardapp.New(
		wizardapp.WithWizard(buildWizard, seed),
		wizardapp.WithRunOptions[schema.Namespace](forms.WithLogger(logger)),
	)
	if err != nil {
		return err
	}

	ns, err := app.Start(cmd.Context())
	if errors.Is(err, wizardapp.ErrAbandoned) {
		logger.Info("wizard abandoned")
		fmt.Fprintln(cmd.ErrOrStderr(), "No extension written.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("wizard exited with error: %w", err)
	}
	logger.Info("namespace completed", zap.String("namespace", ns.Name), zap.Int("types", len(ns.Types)))
	return opts.out.write(cmd.OutOrStdout(), ns)
}

func runReplay(cmd *cobra.Command, opts *options, path string) error {
	logger, err := newLogger(opts.logFile, opts.debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open answers: %w", err)
	}
	defer f.Close()
	script, err := replay.Load(f)
	if err != nil {
		return err
	}

	seed, err := seedNamespace(opts.from)
	if err != nil {
		return err
	}

	host := memhost.New()
	launcher := buildWizard(host, forms.WithLogger(logger))
	ns, err := replay.Run(cmd.Context(), launcher, host, seed, script)
	if err != nil {
		return err
	}
	logger.Info("namespace replayed", zap.String("namespace", ns.Name), zap.Int("answers", len(script.Answers)))
	return opts.out.write(cmd.OutOrStdout(), ns)
}

func buildWizard(host forms.Host, opts ...forms.RunOption) forms.Launcher[schema.Namespace] {
	return wizards.New(host, wizards.WithRunOptions(opts...)).Launcher()
}

func seedNamespace(from string) (schema.Namespace, error) {
	if from == "" {
		return wizards.Seed(), nil
	}
	return loadScript(from)
}

func loadScript(path string) (schema.Namespace, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return schema.Namespace{}, fmt.Errorf("read script: %w", err)
	}
	return codegen.Recover(string(raw))
}

func newLogger(path string, debug bool) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
